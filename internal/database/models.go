package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the users table row
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                uuid.UUID `bun:"id,pk,type:uuid"`
	Name              string    `bun:"name,notnull"`
	Email             string    `bun:"email,notnull,unique"`
	PasswordHash      string    `bun:"password_hash,notnull"`
	IsAccountVerified bool      `bun:"is_account_verified,notnull"`
	VerifyOTP         string    `bun:"verify_otp,notnull"`
	VerifyOTPExpireAt int64     `bun:"verify_otp_expire_at,notnull"`
	ResetOTP          string    `bun:"reset_otp,notnull"`
	ResetOTPExpireAt  int64     `bun:"reset_otp_expire_at,notnull"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
