package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shoplite/shoplite-api/internal/model"
	"github.com/shoplite/shoplite-api/internal/repository"
)

var ErrInvalidUserID = errors.New("invalid user id in session")

// seedCatalogSize is how many synthetic categories the lazy seed
// generates on first access to an empty catalog.
const seedCatalogSize = 100

// CategoryStore is the catalog access the interests feature needs.
type CategoryStore interface {
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, category *model.Category) error
	ListAll(ctx context.Context) ([]model.Category, error)
	FindByCategoryID(ctx context.Context, categoryID string) (*model.Category, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]model.Category, error)
}

// InterestsStore persists the per-user interest set.
type InterestsStore interface {
	FindByUserID(ctx context.Context, userID bson.ObjectID) (*model.UserInterests, error)
	Replace(ctx context.Context, userID bson.ObjectID, interests []bson.ObjectID) error
}

// InterestsService serves the category catalog and each user's
// interest selection.
type InterestsService struct {
	categories CategoryStore
	interests  InterestsStore
}

// NewInterestsService creates a new InterestsService.
func NewInterestsService(categories CategoryStore, interests InterestsStore) *InterestsService {
	return &InterestsService{categories: categories, interests: interests}
}

// ListCategories returns the full catalog ordered by label, seeding it
// first if empty.
func (s *InterestsService) ListCategories(ctx context.Context) ([]model.CategoryResponse, error) {
	if err := s.ensureSeeded(ctx); err != nil {
		return nil, err
	}

	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, model.CategoryResponse{
			ID:          category.CategoryID,
			Label:       category.Name,
			Description: category.Description,
		})
	}
	return responses, nil
}

// ensureSeeded populates an empty catalog with synthetic commerce
// categories. Seeding upserts on the unique external id, so two
// concurrent first reads converge on one catalog.
func (s *InterestsService) ensureSeeded(ctx context.Context) error {
	count, err := s.categories.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	slog.Info("seeding category catalog", "size", seedCatalogSize)
	for i := 1; i <= seedCatalogSize; i++ {
		category := &model.Category{
			CategoryID:  fmt.Sprintf("category-%d", i),
			Name:        gofakeit.ProductCategory(),
			Description: gofakeit.ProductDescription(),
		}
		if err := s.categories.Upsert(ctx, category); err != nil {
			return fmt.Errorf("seeding category %s: %w", category.CategoryID, err)
		}
	}
	return nil
}

// GetInterests returns the external category ids stored for a user.
// A user with no stored set gets an empty list, not an error.
func (s *InterestsService) GetInterests(ctx context.Context, userID string) ([]string, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	stored, err := s.interests.FindByUserID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if stored == nil || len(stored.Interests) == 0 {
		return []string{}, nil
	}

	categories, err := s.categories.FindByIDs(ctx, stored.Interests)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.CategoryID)
	}
	return ids, nil
}

// SaveInterests replaces the user's stored set with the resolvable
// subset of the given external ids. Unknown ids are dropped with a
// warning rather than failing the save. Returns how many were stored.
func (s *InterestsService) SaveInterests(ctx context.Context, userID string, categoryIDs []string) (int, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, ErrInvalidUserID
	}

	resolved := make([]bson.ObjectID, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		category, err := s.categories.FindByCategoryID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				slog.Warn("category not found, dropping from interests", "categoryId", categoryID)
				continue
			}
			return 0, err
		}
		resolved = append(resolved, category.ID)
	}

	if err := s.interests.Replace(ctx, oid, resolved); err != nil {
		return 0, err
	}
	return len(resolved), nil
}
