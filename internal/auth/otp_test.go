package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-auth-otp/internal/user"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0], "codes never start with zero")
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "non-digit in %q", code)
		}
	}
}

func TestIssueVerifyOTP(t *testing.T) {
	expireAt := time.UnixMilli(1_700_000_000_000)

	next, err := issueVerifyOTP(user.User{VerifyOTP: "111111", VerifyOTPExpireAt: 1}, "222222", expireAt)
	require.NoError(t, err)
	assert.Equal(t, "222222", next.VerifyOTP)
	assert.Equal(t, expireAt.UnixMilli(), next.VerifyOTPExpireAt)

	verified := user.User{IsAccountVerified: true}
	same, err := issueVerifyOTP(verified, "222222", expireAt)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
	assert.Equal(t, verified, same)
}

func TestConsumeVerifyOTP(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	pending := user.User{VerifyOTP: "123456", VerifyOTPExpireAt: now.UnixMilli()}

	tests := []struct {
		name    string
		u       user.User
		code    string
		now     time.Time
		wantErr error
	}{
		{"match at expiry instant", pending, "123456", now, nil},
		{"mismatch", pending, "654321", now, ErrInvalidOTP},
		{"expired", pending, "123456", now.Add(time.Millisecond), ErrExpiredOTP},
		{"mismatch wins over expired", pending, "654321", now.Add(time.Hour), ErrInvalidOTP},
		{"no pending code", user.User{}, "", now, ErrInvalidOTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := consumeVerifyOTP(tt.u, tt.code, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.u, next)
				return
			}
			require.NoError(t, err)
			assert.True(t, next.IsAccountVerified)
			assert.Empty(t, next.VerifyOTP)
			assert.Zero(t, next.VerifyOTPExpireAt)
		})
	}
}

func TestResetOTPTransitions(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	u := issueResetOTP(user.User{PasswordHash: "old"}, "777777", now.Add(15*time.Minute))
	assert.Equal(t, "777777", u.ResetOTP)

	_, err := consumeResetOTP(u, "000000", "new", now)
	assert.ErrorIs(t, err, ErrInvalidOTP)

	_, err = consumeResetOTP(u, "777777", "new", now.Add(16*time.Minute))
	assert.ErrorIs(t, err, ErrExpiredOTP)

	next, err := consumeResetOTP(u, "777777", "new", now)
	require.NoError(t, err)
	assert.Equal(t, "new", next.PasswordHash)
	assert.Empty(t, next.ResetOTP)
	assert.Zero(t, next.ResetOTPExpireAt)

	// Input value is untouched
	assert.Equal(t, "old", u.PasswordHash)
}

func TestOTPMatches(t *testing.T) {
	assert.True(t, otpMatches("123456", "123456"))
	assert.False(t, otpMatches("123456", "12345"))
	assert.False(t, otpMatches("", ""))
}
