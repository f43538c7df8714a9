package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/redmonkez12/go-auth-otp/internal/httputil"
	"github.com/redmonkez12/go-auth-otp/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const UserIDContextKey ContextKey = "user_id"

const notAuthorizedMessage = "Not Authorized. Login Again"

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth validates the session token and stores the account id in the request context.
// Rejections use the same 200 envelope as every other response.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		var token string

		// Priority 1: Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			} else {
				// Not ours, the cookie may still carry a session
				logger.Debug("ignoring non-bearer authorization header")
			}
		}

		// Priority 2: Cookie (fallback)
		if token == "" {
			cookieToken, err := GetSessionTokenFromCookie(r)
			if err != nil {
				httputil.RespondFailure(w, notAuthorizedMessage)
				return
			}
			token = cookieToken
		}

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			logger.Warn("session token rejected", "error", err.Error())
			httputil.RespondFailure(w, notAuthorizedMessage)
			return
		}

		ctx := WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUserID stores the authenticated account id in ctx
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}
