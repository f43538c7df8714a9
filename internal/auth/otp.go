package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/redmonkez12/go-auth-otp/internal/user"
)

const (
	otpMin   = 100000
	otpRange = 900000 // codes fall in [100000, 999999]
)

// generateOTP returns a uniformly random 6-digit code
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// The transitions below are pure: they take the current account state and
// return the next one. Persisting the result is up to the caller.

// issueVerifyOTP moves an unverified account to the OTP-pending state,
// replacing any earlier code.
func issueVerifyOTP(u user.User, code string, expireAt time.Time) (user.User, error) {
	if u.IsAccountVerified {
		return u, ErrAlreadyVerified
	}

	u.VerifyOTP = code
	u.VerifyOTPExpireAt = expireAt.UnixMilli()
	return u, nil
}

// consumeVerifyOTP marks the account verified when code matches an unexpired
// pending code. An expired code is reported but left in place.
func consumeVerifyOTP(u user.User, code string, now time.Time) (user.User, error) {
	if !otpMatches(u.VerifyOTP, code) {
		return u, ErrInvalidOTP
	}
	if u.VerifyOTPExpireAt < now.UnixMilli() {
		return u, ErrExpiredOTP
	}

	u.IsAccountVerified = true
	u.VerifyOTP = ""
	u.VerifyOTPExpireAt = 0
	return u, nil
}

// issueResetOTP stores a password reset code, replacing any earlier one
func issueResetOTP(u user.User, code string, expireAt time.Time) user.User {
	u.ResetOTP = code
	u.ResetOTPExpireAt = expireAt.UnixMilli()
	return u
}

// consumeResetOTP swaps in passwordHash when code matches an unexpired reset code
func consumeResetOTP(u user.User, code, passwordHash string, now time.Time) (user.User, error) {
	if !otpMatches(u.ResetOTP, code) {
		return u, ErrInvalidOTP
	}
	if u.ResetOTPExpireAt < now.UnixMilli() {
		return u, ErrExpiredOTP
	}

	u.PasswordHash = passwordHash
	u.ResetOTP = ""
	u.ResetOTPExpireAt = 0
	return u, nil
}

// otpMatches compares in constant time; an empty stored code never matches
func otpMatches(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
