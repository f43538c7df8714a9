package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/redmonkez12/go-auth-otp/internal/logging"
	"github.com/redmonkez12/go-auth-otp/internal/user"
)

const (
	// DefaultBcryptCost is the default for ServiceConfig.BcryptCost.
	DefaultBcryptCost = 10

	// DefaultSessionDuration is the default for ServiceConfig.SessionDuration.
	DefaultSessionDuration = 7 * 24 * time.Hour

	// DefaultVerifyOTPTTL is the default for ServiceConfig.VerifyOTPTTL.
	DefaultVerifyOTPTTL = 24 * time.Hour

	// DefaultResetOTPTTL is the default for ServiceConfig.ResetOTPTTL.
	DefaultResetOTPTTL = 15 * time.Minute
)

// ServiceConfig holds Service tuning. A zero value is valid, see constants for defaults.
type ServiceConfig struct {
	BcryptCost      int
	SessionDuration time.Duration
	VerifyOTPTTL    time.Duration
	ResetOTPTTL     time.Duration
}

// Session is an issued session token bound to an account
type Session struct {
	Token  string
	UserID string
}

// Service handles authentication business logic.
// It keeps no per-account state: every call reads the account, computes the
// next state and writes it back once. Concurrent calls on the same account
// are not serialized, the last write wins.
type Service struct {
	userRepo     UserRepository
	emailService EmailService
	tokenService TokenService
	logger       *logging.Logger
	cfg          ServiceConfig

	now         func() time.Time
	generateOTP func() (string, error)
}

func NewService(
	userRepo UserRepository,
	emailService EmailService,
	tokenService TokenService,
	logger *logging.Logger,
	cfg ServiceConfig,
) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}
	if cfg.BcryptCost < bcrypt.MinCost {
		cfg.BcryptCost = bcrypt.MinCost
	}
	if cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.MaxCost
	}
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultSessionDuration
	}
	if cfg.VerifyOTPTTL == 0 {
		cfg.VerifyOTPTTL = DefaultVerifyOTPTTL
	}
	if cfg.ResetOTPTTL == 0 {
		cfg.ResetOTPTTL = DefaultResetOTPTTL
	}

	return &Service{
		userRepo:     userRepo,
		emailService: emailService,
		tokenService: tokenService,
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
		generateOTP:  generateOTP,
	}
}

// SessionDuration is how long issued session tokens stay valid
func (s *Service) SessionDuration() time.Duration {
	return s.cfg.SessionDuration
}

// Register creates an unverified account, opens a session for it and sends a welcome email.
// When only the welcome email fails, the session is returned together with an ErrDelivery error:
// the account already exists and is not rolled back.
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingDetails
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, infraError("find user by email", err)
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	newUser, err := s.userRepo.Create(ctx, user.New(name, email, passwordHash))
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, infraError("create user", err)
	}

	s.logger.Info("user registered", "user_id", newUser.ID)

	session, err := s.issueSession(newUser.ID)
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendWelcomeEmail(ctx, newUser.Email); err != nil {
		s.logger.Warn("failed to send welcome email", "user_id", newUser.ID, "error", err)
		return session, deliveryError(err)
	}

	return session, nil
}

// Login checks the credentials and opens a session.
// Unknown email and wrong password are reported identically.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, infraError("find user by email", err)
	}

	if !s.verifyPassword(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(existingUser.ID)
}

// SendVerifyOTP issues a fresh email verification code, replacing any pending one, and mails it
func (s *Service) SendVerifyOTP(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingDetails
	}

	existingUser, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}

	if existingUser.IsAccountVerified {
		return ErrAlreadyVerified
	}
	if existingUser.VerificationPending() {
		s.logger.Debug("replacing pending verification otp", "user_id", existingUser.ID)
	}

	code, err := s.generateOTP()
	if err != nil {
		return infraError("generate otp", err)
	}

	next, err := issueVerifyOTP(*existingUser, code, s.now().Add(s.cfg.VerifyOTPTTL))
	if err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, &next); err != nil {
		return infraError("save user", err)
	}

	if err := s.emailService.SendVerificationOTP(ctx, next.Email, code); err != nil {
		s.logger.Warn("failed to send verification otp", "user_id", next.ID, "error", err)
		return deliveryError(err)
	}

	return nil
}

// VerifyEmail consumes the pending verification code and marks the account verified
func (s *Service) VerifyEmail(ctx context.Context, userID, otp string) error {
	if userID == "" || otp == "" {
		return ErrMissingDetails
	}

	existingUser, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}

	next, err := consumeVerifyOTP(*existingUser, otp, s.now())
	if err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, &next); err != nil {
		return infraError("save user", err)
	}

	s.logger.Info("email verified", "user_id", next.ID)
	return nil
}

// SendResetOTP issues a password reset code for the account registered under email and mails it.
// An unknown email is not an error, so callers cannot tell which addresses have accounts.
func (s *Service) SendResetOTP(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingDetails
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.logger.Info("password reset requested for unknown email", "email", email)
			return nil
		}
		return infraError("find user by email", err)
	}

	code, err := s.generateOTP()
	if err != nil {
		return infraError("generate otp", err)
	}

	next := issueResetOTP(*existingUser, code, s.now().Add(s.cfg.ResetOTPTTL))
	if err := s.userRepo.Save(ctx, &next); err != nil {
		return infraError("save user", err)
	}

	if err := s.emailService.SendPasswordResetOTP(ctx, next.Email, code); err != nil {
		s.logger.Warn("failed to send password reset otp", "user_id", next.ID, "error", err)
		return deliveryError(err)
	}

	return nil
}

// ResetPassword replaces the password when otp matches the pending reset code
func (s *Service) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if email == "" || otp == "" || newPassword == "" {
		return ErrMissingDetails
	}

	existingUser, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	// Check the code before paying for a bcrypt hash
	if _, err := consumeResetOTP(*existingUser, otp, existingUser.PasswordHash, s.now()); err != nil {
		return err
	}

	passwordHash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	next, err := consumeResetOTP(*existingUser, otp, passwordHash, s.now())
	if err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, &next); err != nil {
		return infraError("save user", err)
	}

	s.logger.Info("password reset", "user_id", next.ID)
	return nil
}

// UserData returns the account behind an authenticated session
func (s *Service) UserData(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, ErrMissingDetails
	}
	return s.findByID(ctx, userID)
}

func (s *Service) findByID(ctx context.Context, userID string) (*user.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, infraError("find user by id", err)
	}
	return existingUser, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*user.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, infraError("find user by email", err)
	}
	return existingUser, nil
}

func (s *Service) issueSession(userID string) (*Session, error) {
	token, err := s.tokenService.CreateToken(userID, s.cfg.SessionDuration)
	if err != nil {
		return nil, infraError("create session token", err)
	}

	return &Session{
		Token:  token,
		UserID: userID,
	}, nil
}
