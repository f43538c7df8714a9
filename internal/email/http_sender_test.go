package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-auth-otp/internal/logging"
)

func TestHTTPSender_Send(t *testing.T) {
	var (
		got        Message
		authHeader string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/send", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewHTTPSender(srv.URL+"/v1/send", "api-key", 5*time.Second)
	msg := Message{From: "noreply@example.com", To: "alice@example.com", Subject: "Hi", Text: "hello"}

	require.NoError(t, sender.Send(context.Background(), msg))
	assert.Equal(t, msg, got)
	assert.Equal(t, "Bearer api-key", authHeader)
}

func TestHTTPSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewHTTPSender(srv.URL, "", time.Second).Send(context.Background(), Message{To: "alice@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestHTTPSender_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPSender(url, "", time.Second).Send(context.Background(), Message{To: "alice@example.com"})
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	sender := NewLogSender(logging.Discard())
	assert.NoError(t, sender.Send(context.Background(), Message{To: "alice@example.com"}))
}
