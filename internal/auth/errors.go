package auth

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by Service matches exactly one of these with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrExpiredOTP         = errors.New("otp expired")
	ErrInfrastructure     = errors.New("infrastructure failure")
)

var (
	ErrMissingDetails      = fmt.Errorf("%w: missing details", ErrValidation)
	ErrCredentialsRequired = fmt.Errorf("%w: email and password are required", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password is too long", ErrValidation)
	ErrUserExists          = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrUserNotFound        = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrDelivery            = fmt.Errorf("%w: email delivery failed", ErrInfrastructure)
)

// infraError marks a store, hashing or token failure as ErrInfrastructure while keeping the cause
func infraError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInfrastructure, op, err)
}

// deliveryError marks a notification failure as ErrDelivery while keeping the cause
func deliveryError(err error) error {
	return fmt.Errorf("%w: %w", ErrDelivery, err)
}
