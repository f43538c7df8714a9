package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-auth-otp/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = "23505"

// Repository handles user data persistence in PostgreSQL
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database and assigns its ID
func (r *Repository) Create(ctx context.Context, u *User) (*User, error) {
	now := time.Now().UTC()
	dbUser := mapModelToDBUser(u)
	dbUser.ID = uuid.New()
	dbUser.CreatedAt = now
	dbUser.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(dbUser).
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// FindByEmail retrieves a user by email
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", email).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// FindByID retrieves a user by ID
func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	dbUser := new(database.User)
	err = r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// Save overwrites every mutable column of an existing user
func (r *Repository) Save(ctx context.Context, u *User) error {
	userID, err := uuid.Parse(u.ID)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("name = ?", u.Name).
		Set("email = ?", u.Email).
		Set("password_hash = ?", u.PasswordHash).
		Set("is_account_verified = ?", u.IsAccountVerified).
		Set("verify_otp = ?", u.VerifyOTP).
		Set("verify_otp_expire_at = ?", u.VerifyOTPExpireAt).
		Set("reset_otp = ?", u.ResetOTP).
		Set("reset_otp_expire_at = ?", u.ResetOTPExpireAt).
		Set("updated_at = NOW()").
		Where("id = ?", userID).
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:                dbu.ID.String(),
		Name:              dbu.Name,
		Email:             dbu.Email,
		PasswordHash:      dbu.PasswordHash,
		IsAccountVerified: dbu.IsAccountVerified,
		VerifyOTP:         dbu.VerifyOTP,
		VerifyOTPExpireAt: dbu.VerifyOTPExpireAt,
		ResetOTP:          dbu.ResetOTP,
		ResetOTPExpireAt:  dbu.ResetOTPExpireAt,
		CreatedAt:         dbu.CreatedAt,
		UpdatedAt:         dbu.UpdatedAt,
	}
}

func mapModelToDBUser(u *User) *database.User {
	return &database.User{
		Name:              u.Name,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		IsAccountVerified: u.IsAccountVerified,
		VerifyOTP:         u.VerifyOTP,
		VerifyOTPExpireAt: u.VerifyOTPExpireAt,
		ResetOTP:          u.ResetOTP,
		ResetOTPExpireAt:  u.ResetOTPExpireAt,
	}
}
