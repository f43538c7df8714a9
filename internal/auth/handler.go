package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/redmonkez12/go-auth-otp/internal/httputil"
	"github.com/redmonkez12/go-auth-otp/internal/logging"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, isProduction bool) *Handler {
	return &Handler{
		service: service,
		cookies: NewCookieConfig(isProduction, service.SessionDuration()),
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailRequest represents the email verification request body.
// UserID is accepted for compatibility; the authenticated session decides the account.
type VerifyEmailRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

// SendResetOTPRequest represents the password reset code request body
type SendResetOTPRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the password reset confirmation body
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// UserData is the public view of an account
type UserData struct {
	Name              string `json:"name"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// UserDataResponse represents the user data response
type UserDataResponse struct {
	Success  bool     `json:"success"`
	UserData UserData `json:"userData"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create an account, set the session cookie and send a welcome email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      200 {object} httputil.Envelope
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	session, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if session != nil {
		// The account exists even if the welcome email failed
		SetSessionCookie(w, session.Token, h.cookies)
	}
	if err != nil {
		h.fail(w, logger, "registration failed", err)
		return
	}

	logger.Info("user registered successfully", "user_id", session.UserID)
	httputil.RespondSuccess(w, "")
}

// Login handles user login
// @Summary      User login
// @Description  Check credentials and set the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} httputil.Envelope
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, logger, "login failed", err)
		return
	}

	SetSessionCookie(w, session.Token, h.cookies)

	logger.Info("user logged in successfully", "user_id", session.UserID)
	httputil.RespondSuccess(w, "")
}

// Logout handles user logout
// @Summary      User logout
// @Description  Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} httputil.Envelope
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ClearSessionCookie(w, h.cookies)

	logger.Info("user logged out successfully")
	httputil.RespondSuccess(w, "Logged Out")
}

// SendVerifyOTP handles verification code requests
// @Summary      Send verification OTP
// @Description  Email a 6-digit code to the authenticated account
// @Tags         auth
// @Produce      json
// @Success      200 {object} httputil.Envelope
// @Security     CookieAuth
// @Router       /api/auth/send-verify-otp [post]
func (h *Handler) SendVerifyOTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, _ := GetUserIDFromContext(r.Context())
	logger = logger.WithFields(map[string]any{"user_id": userID})

	if err := h.service.SendVerifyOTP(r.Context(), userID); err != nil {
		h.fail(w, logger, "send verification otp failed", err)
		return
	}

	logger.Info("verification otp sent")
	httputil.RespondSuccess(w, "Verification OTP Sent on Email")
}

// VerifyEmail handles email verification
// @Summary      Verify email address
// @Description  Consume the emailed code and mark the account verified
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body VerifyEmailRequest true "Verification code"
// @Success      200 {object} httputil.Envelope
// @Security     CookieAuth
// @Router       /api/auth/verify-email [post]
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req VerifyEmailRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID, _ := GetUserIDFromContext(r.Context())
	logger = logger.WithFields(map[string]any{"user_id": userID})

	if err := h.service.VerifyEmail(r.Context(), userID, req.OTP); err != nil {
		h.fail(w, logger, "email verification failed", err)
		return
	}

	logger.Info("email verified successfully")
	httputil.RespondSuccess(w, "Email verified successfully")
}

// IsAuthenticated reports whether the session cookie is valid
// @Summary      Session check
// @Tags         auth
// @Produce      json
// @Success      200 {object} httputil.Envelope
// @Security     CookieAuth
// @Router       /api/auth/is-auth [get]
func (h *Handler) IsAuthenticated(w http.ResponseWriter, r *http.Request) {
	httputil.RespondSuccess(w, "")
}

const resetOTPSentMessage = "If an account exists with that email, an OTP has been sent"

// SendResetOTP handles password reset code requests
// @Summary      Send password reset OTP
// @Description  Email a reset code when the address has an account. The reply does not reveal which.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SendResetOTPRequest true "Account email"
// @Success      200 {object} httputil.Envelope
// @Router       /api/auth/send-reset-otp [post]
func (h *Handler) SendResetOTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SendResetOTPRequest
	if !h.decode(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.service.SendResetOTP(r.Context(), req.Email); err != nil {
		h.fail(w, logger, "send reset otp failed", err)
		return
	}

	// Same reply whether or not the email is registered
	logger.Info("password reset otp requested")
	httputil.RespondSuccess(w, resetOTPSentMessage)
}

// ResetPassword handles password reset with an emailed code
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Email, code and new password"
// @Success      200 {object} httputil.Envelope
// @Router       /api/auth/reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.service.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		h.fail(w, logger, "password reset failed", err)
		return
	}

	logger.Info("password reset successfully")
	httputil.RespondSuccess(w, "Password has been reset successfully")
}

// UserData returns the authenticated account's public data
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Success      200 {object} UserDataResponse
// @Security     CookieAuth
// @Router       /api/user/data [get]
func (h *Handler) UserData(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, _ := GetUserIDFromContext(r.Context())

	u, err := h.service.UserData(r.Context(), userID)
	if err != nil {
		h.fail(w, logger, "user data lookup failed", err)
		return
	}

	httputil.RespondJSON(w, UserDataResponse{
		Success: true,
		UserData: UserData{
			Name:              u.Name,
			IsAccountVerified: u.IsAccountVerified,
		},
	}, http.StatusOK)
}

// decode reads a JSON body into dst. An empty body leaves dst zeroed so the
// service reports the missing fields.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		logging.GetLoggerFromContext(r.Context()).Warn("invalid request body", "error", err.Error())
		httputil.RespondFailure(w, "Invalid request body")
		return false
	}
	return true
}

// fail logs err and writes the failure envelope for its class
func (h *Handler) fail(w http.ResponseWriter, logger *logging.Logger, msg string, err error) {
	if errors.Is(err, ErrInfrastructure) {
		logger.Error(msg, "error", err.Error())
	} else {
		logger.Warn(msg, "error", err.Error())
	}
	httputil.RespondFailure(w, ErrorMessage(err))
}

// ErrorMessage maps a Service error to the message shown to clients.
// Internal causes are never included.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrCredentialsRequired):
		return "Email and password are required"
	case errors.Is(err, ErrPasswordTooLong):
		return "Password is too long"
	case errors.Is(err, ErrValidation):
		return "Missing Details"
	case errors.Is(err, ErrConflict):
		return "User already exists"
	case errors.Is(err, ErrNotFound):
		return "User not found"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrAlreadyVerified):
		return "Account Already verified"
	case errors.Is(err, ErrInvalidOTP):
		return "Invalid OTP"
	case errors.Is(err, ErrExpiredOTP):
		return "OTP Expired"
	case errors.Is(err, ErrDelivery):
		return "Failed to send email"
	default:
		return "Something went wrong, please try again"
	}
}
