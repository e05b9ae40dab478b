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

const interestsCollection = "user_interests"

// InterestsRepository handles the per-user interest set.
type InterestsRepository struct {
	db *Mongo
}

// NewInterestsRepository creates a new InterestsRepository.
func NewInterestsRepository(db *Mongo) *InterestsRepository {
	return &InterestsRepository{db: db}
}

func (r *InterestsRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(interestsCollection), nil
}

// FindByUserID returns the stored interest set for a user, or nil if
// the user has never saved one. Having no stored set is not an error.
func (r *InterestsRepository) FindByUserID(ctx context.Context, userID bson.ObjectID) (*model.UserInterests, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var interests model.UserInterests
	err = coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&interests)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &interests, nil
}

// Replace upserts the user's interest set wholesale. The previous set
// is replaced, never merged.
func (r *InterestsRepository) Replace(ctx context.Context, userID bson.ObjectID, interests []bson.ObjectID) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set": bson.M{
				"interests": interests,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}
