package repository

import (
	"context"

	"gorm.io/gorm"

	"wastewise/internal/model"
)

// WasteEntryRepository defines waste entry persistence operations. Reads are
// scoped to the owning user.
type WasteEntryRepository interface {
	Create(ctx context.Context, entry *model.WasteEntry) error
	FindByIDForOwner(ctx context.Context, id, userID uint) (*model.WasteEntry, error)
	ListByOwner(ctx context.Context, userID uint) ([]model.WasteEntry, error)
	RecentByOwner(ctx context.Context, userID uint, limit int) ([]model.WasteEntry, error)
	CountByOwner(ctx context.Context, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type wasteEntryRepository struct {
	db *gorm.DB
}

// NewWasteEntryRepository creates a new waste entry repository.
func NewWasteEntryRepository(db *gorm.DB) WasteEntryRepository {
	return &wasteEntryRepository{db: db}
}

func (r *wasteEntryRepository) Create(ctx context.Context, entry *model.WasteEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByIDForOwner returns ErrNotFound both for missing rows and for rows
// owned by someone else.
func (r *wasteEntryRepository) FindByIDForOwner(ctx context.Context, id, userID uint) (*model.WasteEntry, error) {
	var entry model.WasteEntry
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

func (r *wasteEntryRepository) ListByOwner(ctx context.Context, userID uint) ([]model.WasteEntry, error) {
	return r.RecentByOwner(ctx, userID, -1)
}

// RecentByOwner lists newest entries first; a negative limit returns all.
func (r *wasteEntryRepository) RecentByOwner(ctx context.Context, userID uint, limit int) ([]model.WasteEntry, error) {
	entries := make([]model.WasteEntry, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *wasteEntryRepository) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WasteEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *wasteEntryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WasteEntry{}).Count(&count).Error
	return count, err
}
