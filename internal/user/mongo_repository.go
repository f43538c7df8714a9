package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultCollectionName is the collection users are stored in unless configured otherwise
const DefaultCollectionName = "users"

// document is the stored shape of a user. Keys are camelCase to stay
// readable by existing collections.
type document struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Email             string             `bson:"email"`
	Password          string             `bson:"password"`
	VerifyOTP         string             `bson:"verifyOtp"`
	VerifyOTPExpireAt int64              `bson:"verifyOtpExpireAt"`
	IsAccountVerified bool               `bson:"isAccountVerified"`
	ResetOTP          string             `bson:"resetOtp"`
	ResetOTPExpireAt  int64              `bson:"resetOtpExpireAt"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

// MongoRepository handles user persistence in a MongoDB collection.
// Email uniqueness relies on the index created by database.EnsureUserIndexes.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// Create inserts a new user document and assigns its ObjectID
func (r *MongoRepository) Create(ctx context.Context, u *User) (*User, error) {
	now := time.Now().UTC()
	doc := toDocument(u)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return doc.toModel(), nil
}

// FindByEmail retrieves a user by email
func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID retrieves a user by its hex ObjectID
func (r *MongoRepository) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// Save replaces the stored document with u
func (r *MongoRepository) Save(ctx context.Context, u *User) error {
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return ErrNotFound
	}

	doc := toDocument(u)
	doc.ID = oid
	doc.CreatedAt = u.CreatedAt
	doc.UpdatedAt = time.Now().UTC()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var doc document
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return doc.toModel(), nil
}

func toDocument(u *User) *document {
	return &document{
		Name:              u.Name,
		Email:             u.Email,
		Password:          u.PasswordHash,
		VerifyOTP:         u.VerifyOTP,
		VerifyOTPExpireAt: u.VerifyOTPExpireAt,
		IsAccountVerified: u.IsAccountVerified,
		ResetOTP:          u.ResetOTP,
		ResetOTPExpireAt:  u.ResetOTPExpireAt,
	}
}

func (d *document) toModel() *User {
	return &User{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Email:             d.Email,
		PasswordHash:      d.Password,
		IsAccountVerified: d.IsAccountVerified,
		VerifyOTP:         d.VerifyOTP,
		VerifyOTPExpireAt: d.VerifyOTPExpireAt,
		ResetOTP:          d.ResetOTP,
		ResetOTPExpireAt:  d.ResetOTPExpireAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
