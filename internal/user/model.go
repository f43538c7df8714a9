package user

import "time"

// User is the account record owned by the account store.
// OTP expiry fields hold absolute epoch milliseconds, zero meaning no code is outstanding.
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"` // Never expose password hash in JSON
	IsAccountVerified bool      `json:"isAccountVerified"`
	VerifyOTP         string    `json:"-"`
	VerifyOTPExpireAt int64     `json:"-"`
	ResetOTP          string    `json:"-"`
	ResetOTPExpireAt  int64     `json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// New returns an unverified account with no outstanding codes
func New(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// VerificationPending reports whether a verification code has been issued and not consumed
func (u *User) VerificationPending() bool {
	return u.VerifyOTP != "" && u.VerifyOTPExpireAt != 0
}
