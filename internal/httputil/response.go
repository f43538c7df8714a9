package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the body of every API response.
// Failures are signalled through Success, the HTTP status stays 200.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondSuccess sends {success:true} with an optional message
func RespondSuccess(w http.ResponseWriter, message string) {
	RespondJSON(w, Envelope{Success: true, Message: message}, http.StatusOK)
}

// RespondFailure sends {success:false, message}
func RespondFailure(w http.ResponseWriter, message string) {
	RespondJSON(w, Envelope{Success: false, Message: message}, http.StatusOK)
}
