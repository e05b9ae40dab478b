package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shoplite/shoplite-api/internal/model"
)

func newTestInterestsService() (*InterestsService, *stubCategoryStore, *stubInterestsStore) {
	categories := &stubCategoryStore{}
	interests := newStubInterestsStore()
	return NewInterestsService(categories, interests), categories, interests
}

func seedFixedCatalog(t *testing.T, categories *stubCategoryStore) {
	t.Helper()
	for _, c := range []model.Category{
		{CategoryID: "a", Name: "Apparel"},
		{CategoryID: "b", Name: "Books"},
		{CategoryID: "c", Name: "Crafts"},
	} {
		if err := categories.Upsert(context.Background(), &c); err != nil {
			t.Fatalf("Upsert() unexpected error: %v", err)
		}
	}
}

const testUserID = "64f1c0ffee0000000000abcd"

func TestListCategoriesSeedsEmptyCatalog(t *testing.T) {
	svc, categories, _ := newTestInterestsService()

	listed, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories() unexpected error: %v", err)
	}
	if len(listed) != seedCatalogSize {
		t.Fatalf("ListCategories() returned %d entries, want %d", len(listed), seedCatalogSize)
	}
	for _, category := range listed {
		if category.ID == "" || category.Label == "" {
			t.Fatalf("seeded category missing id or label: %+v", category)
		}
	}

	// Ordered by label.
	if !sort.SliceIsSorted(listed, func(i, j int) bool { return listed[i].Label < listed[j].Label }) {
		t.Error("categories not ordered by label")
	}

	count, _ := categories.Count(context.Background())
	if count != seedCatalogSize {
		t.Errorf("catalog has %d entries after seed, want %d", count, seedCatalogSize)
	}
}

func TestListCategoriesDoesNotReseed(t *testing.T) {
	svc, categories, _ := newTestInterestsService()
	seedFixedCatalog(t, categories)

	listed, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories() unexpected error: %v", err)
	}
	if len(listed) != 3 {
		t.Errorf("ListCategories() returned %d entries, want the 3 existing ones", len(listed))
	}
}

func TestGetInterestsEmpty(t *testing.T) {
	svc, categories, _ := newTestInterestsService()
	seedFixedCatalog(t, categories)

	interests, err := svc.GetInterests(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetInterests() unexpected error: %v", err)
	}
	if interests == nil || len(interests) != 0 {
		t.Errorf("GetInterests() = %v, want empty non-nil list", interests)
	}
}

func TestSaveAndGetInterests(t *testing.T) {
	svc, categories, _ := newTestInterestsService()
	seedFixedCatalog(t, categories)

	saved, err := svc.SaveInterests(context.Background(), testUserID, []string{"a", "b"})
	if err != nil {
		t.Fatalf("SaveInterests() unexpected error: %v", err)
	}
	if saved != 2 {
		t.Errorf("SaveInterests() savedCount = %d, want 2", saved)
	}

	interests, err := svc.GetInterests(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetInterests() unexpected error: %v", err)
	}
	sort.Strings(interests)
	if len(interests) != 2 || interests[0] != "a" || interests[1] != "b" {
		t.Errorf("GetInterests() = %v, want exactly {a, b}", interests)
	}
}

func TestSaveInterestsReplacesNotMerges(t *testing.T) {
	svc, categories, _ := newTestInterestsService()
	seedFixedCatalog(t, categories)

	if _, err := svc.SaveInterests(context.Background(), testUserID, []string{"a", "b"}); err != nil {
		t.Fatalf("SaveInterests() unexpected error: %v", err)
	}
	if _, err := svc.SaveInterests(context.Background(), testUserID, []string{"c"}); err != nil {
		t.Fatalf("SaveInterests() unexpected error: %v", err)
	}

	interests, err := svc.GetInterests(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetInterests() unexpected error: %v", err)
	}
	if len(interests) != 1 || interests[0] != "c" {
		t.Errorf("GetInterests() = %v, want exactly {c}", interests)
	}

	// Saving an empty list clears the set.
	if _, err := svc.SaveInterests(context.Background(), testUserID, []string{}); err != nil {
		t.Fatalf("SaveInterests() unexpected error: %v", err)
	}
	interests, err = svc.GetInterests(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetInterests() unexpected error: %v", err)
	}
	if len(interests) != 0 {
		t.Errorf("GetInterests() = %v after clearing, want empty", interests)
	}
}

func TestSaveInterestsDropsUnknownIDs(t *testing.T) {
	svc, categories, _ := newTestInterestsService()
	seedFixedCatalog(t, categories)

	saved, err := svc.SaveInterests(context.Background(), testUserID, []string{"a", "no-such-category", "b"})
	if err != nil {
		t.Fatalf("SaveInterests() unexpected error: %v", err)
	}
	if saved != 2 {
		t.Errorf("SaveInterests() savedCount = %d, want 2 (unknown id dropped)", saved)
	}
}

func TestInterestsInvalidUserID(t *testing.T) {
	svc, _, _ := newTestInterestsService()

	if _, err := svc.GetInterests(context.Background(), "not-an-object-id"); !errors.Is(err, ErrInvalidUserID) {
		t.Errorf("GetInterests() error = %v, want ErrInvalidUserID", err)
	}
	if _, err := svc.SaveInterests(context.Background(), "not-an-object-id", nil); !errors.Is(err, ErrInvalidUserID) {
		t.Errorf("SaveInterests() error = %v, want ErrInvalidUserID", err)
	}
}
