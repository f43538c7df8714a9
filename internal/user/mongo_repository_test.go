package user

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/redmonkez12/go-auth-otp/internal/database"
)

// Runs against a live server only when MONGO_TEST_URI is set
func newMongoTestRepository(t *testing.T) *MongoRepository {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.NewMongo(ctx, uri)
	require.NoError(t, err)

	db := client.Database("auth_test_" + primitive.NewObjectID().Hex())
	coll := db.Collection(DefaultCollectionName)
	require.NoError(t, database.EnsureUserIndexes(ctx, coll))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	return NewMongoRepository(coll)
}

func TestMongoRepository(t *testing.T) {
	repo := newMongoTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, New("Alice", "alice@example.com", "hash"))
	require.NoError(t, err)
	assert.True(t, primitive.IsValidObjectID(created.ID))

	_, err = repo.Create(ctx, New("Other", "alice@example.com", "hash"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	found, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	found.VerifyOTP = "123456"
	found.VerifyOTPExpireAt = 1700000000000
	require.NoError(t, repo.Save(ctx, found))

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "123456", byID.VerifyOTP)
	assert.Equal(t, int64(1700000000000), byID.VerifyOTPExpireAt)

	// Stored keys stay camelCase
	var raw bson.M
	require.NoError(t, repo.coll.FindOne(ctx, bson.M{"email": "alice@example.com"}).Decode(&raw))
	assert.Equal(t, "123456", raw["verifyOtp"])
	assert.Equal(t, "hash", raw["password"])
	assert.Contains(t, raw, "isAccountVerified")

	_, err = repo.FindByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByID(ctx, "not-hex")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Save(ctx, &User{ID: primitive.NewObjectID().Hex()}), ErrNotFound)
}

func TestDocumentRoundTrip(t *testing.T) {
	u := &User{
		ID:                primitive.NewObjectID().Hex(),
		Name:              "Alice",
		Email:             "alice@example.com",
		PasswordHash:      "hash",
		IsAccountVerified: true,
		ResetOTP:          "777777",
		ResetOTPExpireAt:  99,
	}

	doc := toDocument(u)
	oid, err := primitive.ObjectIDFromHex(u.ID)
	require.NoError(t, err)
	doc.ID = oid

	assert.Equal(t, u, doc.toModel())
}
