package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "token"

// CookieConfig holds the attributes of the session cookie.
// Set and clear both build from it, browsers only drop a cookie whose scope
// and flags match the ones it was stored with.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

// NewCookieConfig returns cross-site, secure-only cookies in production and
// strict same-site cookies elsewhere
func NewCookieConfig(isProduction bool, maxAge time.Duration) CookieConfig {
	cfg := CookieConfig{
		Secure:   isProduction,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	}
	if isProduction {
		cfg.SameSite = http.SameSiteNoneMode
	}
	return cfg
}

func (c CookieConfig) base() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

// SetSessionCookie stores the session token on the client
func SetSessionCookie(w http.ResponseWriter, token string, cfg CookieConfig) {
	cookie := cfg.base()
	cookie.Value = token
	cookie.MaxAge = int(cfg.MaxAge.Seconds())
	cookie.Expires = time.Now().Add(cfg.MaxAge)
	http.SetCookie(w, cookie)
}

// ClearSessionCookie expires the session cookie on the client
func ClearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	cookie := cfg.base()
	cookie.Value = ""
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
}

// GetSessionTokenFromCookie returns the session token sent by the client
func GetSessionTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", err
	}
	if cookie.Value == "" {
		return "", http.ErrNoCookie
	}
	return cookie.Value, nil
}
