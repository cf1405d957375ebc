package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"wastewise/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role string) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockWasteEntryRepository is a mock implementation of WasteEntryRepository.
type MockWasteEntryRepository struct {
	mock.Mock
}

func (m *MockWasteEntryRepository) Create(ctx context.Context, entry *model.WasteEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWasteEntryRepository) FindByIDForOwner(ctx context.Context, id, userID uint) (*model.WasteEntry, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WasteEntry), args.Error(1)
}

func (m *MockWasteEntryRepository) ListByOwner(ctx context.Context, userID uint) ([]model.WasteEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteEntry), args.Error(1)
}

func (m *MockWasteEntryRepository) RecentByOwner(ctx context.Context, userID uint, limit int) ([]model.WasteEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteEntry), args.Error(1)
}

func (m *MockWasteEntryRepository) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWasteEntryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockWasteCollectionRepository is a mock implementation of WasteCollectionRepository.
type MockWasteCollectionRepository struct {
	mock.Mock
}

func (m *MockWasteCollectionRepository) CreateForEntry(ctx context.Context, collection *model.WasteCollection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockWasteCollectionRepository) ListPending(ctx context.Context) ([]model.PendingPickup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PendingPickup), args.Error(1)
}

func (m *MockWasteCollectionRepository) MarkCollected(ctx context.Context, id uint, collector string, at time.Time) error {
	args := m.Called(ctx, id, collector, at)
	return args.Error(0)
}

func (m *MockWasteCollectionRepository) ListByRequester(ctx context.Context, userID uint) ([]model.WasteCollection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteCollection), args.Error(1)
}

func (m *MockWasteCollectionRepository) RecentByRequester(ctx context.Context, userID uint, limit int) ([]model.WasteCollection, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteCollection), args.Error(1)
}

func (m *MockWasteCollectionRepository) ListCollectedBy(ctx context.Context, collector string) ([]model.WasteCollection, error) {
	args := m.Called(ctx, collector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WasteCollection), args.Error(1)
}

func (m *MockWasteCollectionRepository) CountByRequester(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWasteCollectionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockFoodDonationRepository is a mock implementation of FoodDonationRepository.
type MockFoodDonationRepository struct {
	mock.Mock
}

func (m *MockFoodDonationRepository) Create(ctx context.Context, donation *model.FoodDonation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockFoodDonationRepository) ListByOwner(ctx context.Context, userID uint) ([]model.FoodDonation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodDonation), args.Error(1)
}

func (m *MockFoodDonationRepository) RecentByOwner(ctx context.Context, userID uint, limit int) ([]model.FoodDonation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodDonation), args.Error(1)
}

func (m *MockFoodDonationRepository) ListPending(ctx context.Context) ([]model.FoodDonation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodDonation), args.Error(1)
}

func (m *MockFoodDonationRepository) ListCollectedBy(ctx context.Context, collector string) ([]model.FoodDonation, error) {
	args := m.Called(ctx, collector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodDonation), args.Error(1)
}

func (m *MockFoodDonationRepository) MarkCollected(ctx context.Context, id uint, collector string, at time.Time) error {
	args := m.Called(ctx, id, collector, at)
	return args.Error(0)
}

func (m *MockFoodDonationRepository) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFoodDonationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockActivityLogRepository is a mock implementation of ActivityLogRepository.
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Create(ctx context.Context, log *model.ActivityLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockActivityLogRepository) CreateBatch(ctx context.Context, logs []model.ActivityLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

func (m *MockActivityLogRepository) ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActivityLog), args.Error(1)
}

// MockCache is a mock implementation of cache.Store.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// recordedActivity collects records in memory.
type recordedActivity struct {
	mu      sync.Mutex
	entries []model.ActivityLog
}

func (r *recordedActivity) Record(_ context.Context, entry model.ActivityLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordedActivity) actions() []model.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.ActivityAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}
