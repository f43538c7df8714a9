package auth

import (
	"context"
	"time"

	"github.com/redmonkez12/go-auth-otp/internal/user"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_mock.go -package=mock

// TokenService defines the interface for session token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository is the account store consumed by Service.
// Lookups report a missing account as user.ErrNotFound, Create reports a
// taken email as user.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	Save(ctx context.Context, u *user.User) error
}

// EmailService defines the interface for outbound account emails
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, toEmail string) error
	SendVerificationOTP(ctx context.Context, toEmail, otp string) error
	SendPasswordResetOTP(ctx context.Context, toEmail, otp string) error
}
