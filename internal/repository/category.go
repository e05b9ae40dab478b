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

var ErrCategoryNotFound = errors.New("category not found")

const categoryCollection = "categories"

// CategoryRepository handles catalog persistence operations.
type CategoryRepository struct {
	db *Mongo
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *Mongo) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(categoryCollection), nil
}

// EnsureIndexes creates the unique external-id index. The uniqueness
// keeps a concurrent double seed from producing duplicate entries.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Count returns the number of catalog entries.
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{})
}

// Upsert writes a catalog entry keyed on its external id, so repeated
// seeding converges instead of duplicating.
func (r *CategoryRepository) Upsert(ctx context.Context, category *model.Category) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = coll.UpdateOne(ctx,
		bson.M{"id": category.CategoryID},
		bson.M{
			"$set": bson.M{
				"name":        category.Name,
				"description": category.Description,
				"updatedAt":   now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// ListAll returns every catalog entry ordered by label.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []model.Category
	for cursor.Next(ctx) {
		var category model.Category
		if err := cursor.Decode(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, cursor.Err()
}

// FindByCategoryID resolves an external id to its catalog entry.
func (r *CategoryRepository) FindByCategoryID(ctx context.Context, categoryID string) (*model.Category, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var category model.Category
	err = coll.FindOne(ctx, bson.M{"id": categoryID}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByIDs returns the catalog entries whose ObjectIDs are in ids.
func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Category, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []model.Category
	for cursor.Next(ctx) {
		var category model.Category
		if err := cursor.Decode(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, cursor.Err()
}
