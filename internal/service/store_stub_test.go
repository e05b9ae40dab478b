package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/shoplite/shoplite-api/internal/model"
	"github.com/shoplite/shoplite-api/internal/repository"
)

// In-memory stand-ins for the mongo repositories, mirroring their
// sentinel errors and conditional-update semantics.

type stubUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[string]*model.User)}
}

func (s *stubUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = bson.NewObjectID()
	stored := *user
	s.users[user.Email] = &stored
	return nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserStore) SetOTP(_ context.Context, email, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.OTP = &code
	user.OTPExpiresAt = &expiresAt
	return nil
}

func (s *stubUserStore) ConsumeOTP(_ context.Context, email, code string, now time.Time) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok || user.OTP == nil || *user.OTP != code || !user.OTPExpiresAt.After(now) {
		return nil, repository.ErrOTPMismatch
	}
	before := *user
	user.OTP = nil
	user.OTPExpiresAt = nil
	return &before, nil
}

// expireOTP backdates the pending code so it matches but is expired.
func (s *stubUserStore) expireOTP(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[email]; ok && user.OTPExpiresAt != nil {
		past := time.Now().Add(-time.Minute)
		user.OTPExpiresAt = &past
	}
}

func (s *stubUserStore) pendingOTP(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[email]; ok && user.OTP != nil {
		return *user.OTP
	}
	return ""
}

type stubDispatcher struct {
	mu       sync.Mutex
	sent     []string
	lastCode string
	fail     error
}

func (d *stubDispatcher) SendOTP(email, code string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fail != nil {
		return d.fail
	}
	d.sent = append(d.sent, email)
	d.lastCode = code
	return nil
}

type stubCategoryStore struct {
	mu         sync.Mutex
	categories []*model.Category
}

func (s *stubCategoryStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.categories)), nil
}

func (s *stubCategoryStore) Upsert(_ context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.CategoryID == category.CategoryID {
			existing.Name = category.Name
			existing.Description = category.Description
			return nil
		}
	}
	stored := *category
	stored.ID = bson.NewObjectID()
	s.categories = append(s.categories, &stored)
	return nil
}

func (s *stubCategoryStore) ListAll(_ context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, 0, len(s.categories))
	for _, category := range s.categories {
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubCategoryStore) FindByCategoryID(_ context.Context, categoryID string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, category := range s.categories {
		if category.CategoryID == categoryID {
			copied := *category
			return &copied, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (s *stubCategoryStore) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[bson.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var out []model.Category
	for _, category := range s.categories {
		if wanted[category.ID] {
			out = append(out, *category)
		}
	}
	return out, nil
}

type stubInterestsStore struct {
	mu   sync.Mutex
	sets map[bson.ObjectID][]bson.ObjectID
}

func newStubInterestsStore() *stubInterestsStore {
	return &stubInterestsStore{sets: make(map[bson.ObjectID][]bson.ObjectID)}
}

func (s *stubInterestsStore) FindByUserID(_ context.Context, userID bson.ObjectID) (*model.UserInterests, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	interests, ok := s.sets[userID]
	if !ok {
		return nil, nil
	}
	return &model.UserInterests{UserID: userID, Interests: interests}, nil
}

func (s *stubInterestsStore) Replace(_ context.Context, userID bson.ObjectID, interests []bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets[userID] = interests
	return nil
}
