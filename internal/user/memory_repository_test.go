package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created, err := repo.Create(ctx, New("Alice", "alice@example.com", "hash"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, New("Other", "alice@example.com", "hash"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// Returned values are copies
	byEmail.Name = "Mallory"
	again, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)

	again.VerifyOTP = "123456"
	again.VerifyOTPExpireAt = 1
	require.NoError(t, repo.Save(ctx, again))

	saved, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "123456", saved.VerifyOTP)
	assert.Equal(t, created.CreatedAt, saved.CreatedAt)
	assert.True(t, saved.VerificationPending())

	assert.ErrorIs(t, repo.Save(ctx, &User{ID: "missing"}), ErrNotFound)
}

func TestMemoryRepository_SaveEmailChange(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	alice, err := repo.Create(ctx, New("Alice", "alice@example.com", "hash"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, New("Bob", "bob@example.com", "hash"))
	require.NoError(t, err)

	alice.Email = "bob@example.com"
	assert.ErrorIs(t, repo.Save(ctx, alice), ErrDuplicateEmail)

	alice.Email = "alice@new.example.com"
	require.NoError(t, repo.Save(ctx, alice))

	_, err = repo.FindByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	found, err := repo.FindByEmail(ctx, "alice@new.example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)
}
