package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-auth-otp/internal/httputil"
)

func TestRequireAuth(t *testing.T) {
	tokens, err := NewJWTService([]byte("secret"))
	require.NoError(t, err)
	m := NewMiddleware(tokens)

	valid, err := tokens.CreateToken("user-1", time.Hour)
	require.NoError(t, err)
	expired, err := tokens.CreateToken("user-1", -time.Hour)
	require.NoError(t, err)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		httputil.RespondSuccess(w, "")
	})

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantPass bool
		wantUser string
	}{
		{
			name:     "cookie",
			setup:    func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: valid}) },
			wantPass: true,
			wantUser: "user-1",
		},
		{
			name:     "bearer header",
			setup:    func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+valid) },
			wantPass: true,
			wantUser: "user-1",
		},
		{
			name:  "no token",
			setup: func(r *http.Request) {},
		},
		{
			name:  "empty cookie",
			setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: ""}) },
		},
		{
			name:  "expired token",
			setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: expired}) },
		},
		{
			name:  "tampered token",
			setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: valid + "x"}) },
		},
		{
			name:  "malformed header",
			setup: func(r *http.Request) { r.Header.Set("Authorization", "Token "+valid) },
		},
		{
			name: "malformed header falls back to cookie",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: valid})
			},
			wantPass: true,
			wantUser: "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/auth/is-auth", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			m.RequireAuth(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)

			var body httputil.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantPass, body.Success)
			assert.Equal(t, tt.wantUser, gotUserID)
			if !tt.wantPass {
				assert.Equal(t, "Not Authorized. Login Again", body.Message)
			}
		})
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserIDFromContext(req.Context())
	assert.False(t, ok)

	id, ok := GetUserIDFromContext(WithUserID(req.Context(), "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
}

func TestNewCookieConfig(t *testing.T) {
	dev := NewCookieConfig(false, time.Hour)
	assert.False(t, dev.Secure)
	assert.Equal(t, http.SameSiteStrictMode, dev.SameSite)

	prod := NewCookieConfig(true, time.Hour)
	assert.True(t, prod.Secure)
	assert.Equal(t, http.SameSiteNoneMode, prod.SameSite)
	assert.Equal(t, time.Hour, prod.MaxAge)
}

func TestGetSessionTokenFromCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSessionTokenFromCookie(req)
	assert.ErrorIs(t, err, http.ErrNoCookie)

	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	token, err := GetSessionTokenFromCookie(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
