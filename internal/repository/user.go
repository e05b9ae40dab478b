package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shoplite/shoplite-api/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrOTPMismatch    = errors.New("otp did not match a pending code")
)

const userCollection = "users"

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *Mongo
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *Mongo) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(userCollection), nil
}

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new user and sets the generated ID on the user
// struct. A duplicate email is reported as ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	if id, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByEmail retrieves a user by their email address. The email is
// matched exactly as stored, with no normalization.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetOTP replaces the user's pending OTP pair with a fresh code and
// expiry, invalidating any previously issued code.
func (r *UserRepository) SetOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"otp":          code,
			"otpExpiresAt": expiresAt,
			"updatedAt":    time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ConsumeOTP atomically clears the user's OTP pair when the stored
// code equals the submitted code and has not expired, returning the
// user as it was before the update. There is no separate read-then-
// write step, so two concurrent attempts with the same code cannot
// both succeed. A filter miss is reported as ErrOTPMismatch; the
// caller decides whether that means not-found, invalid, or expired.
func (r *UserRepository) ConsumeOTP(ctx context.Context, email, code string, now time.Time) (*model.User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"email":        email,
		"otp":          code,
		"otpExpiresAt": bson.M{"$gt": now},
	}
	update := bson.M{
		"$unset": bson.M{"otp": "", "otpExpiresAt": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}

	var user model.User
	err = coll.FindOneAndUpdate(ctx, filter, update).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOTPMismatch
		}
		return nil, err
	}
	return &user, nil
}
