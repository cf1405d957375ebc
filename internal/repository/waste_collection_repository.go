package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "wastewise/internal/errors"
	"wastewise/internal/model"
)

// WasteCollectionRepository defines collection request persistence operations.
type WasteCollectionRepository interface {
	CreateForEntry(ctx context.Context, collection *model.WasteCollection) error
	ListPending(ctx context.Context) ([]model.PendingPickup, error)
	MarkCollected(ctx context.Context, id uint, collector string, at time.Time) error
	ListByRequester(ctx context.Context, userID uint) ([]model.WasteCollection, error)
	RecentByRequester(ctx context.Context, userID uint, limit int) ([]model.WasteCollection, error)
	ListCollectedBy(ctx context.Context, collector string) ([]model.WasteCollection, error)
	CountByRequester(ctx context.Context, userID uint) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type wasteCollectionRepository struct {
	db *gorm.DB
}

// NewWasteCollectionRepository creates a new collection repository.
func NewWasteCollectionRepository(db *gorm.DB) WasteCollectionRepository {
	return &wasteCollectionRepository{db: db}
}

// CreateForEntry inserts a pending collection and moves the referenced entry
// to "Pending Collection" in one transaction. The entry must belong to
// collection.UserID and still be Pending.
func (r *wasteCollectionRepository) CreateForEntry(ctx context.Context, collection *model.WasteCollection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.WasteEntry{}).
			Where("id = ? AND user_id = ? AND status = ?", collection.WasteEntryID, collection.UserID, model.EntryStatusPending).
			Update("status", model.EntryStatusPendingCollection)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.WasteEntry{}).
				Where("id = ? AND user_id = ?", collection.WasteEntryID, collection.UserID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperrors.ErrNotFound
			}
			return apperrors.ErrCollectionExists
		}

		collection.Status = model.CollectionStatusPending
		return tx.Create(collection).Error
	})
}

// ListPending returns pending requests with entry details, newest first.
func (r *wasteCollectionRepository) ListPending(ctx context.Context) ([]model.PendingPickup, error) {
	pickups := make([]model.PendingPickup, 0)
	err := r.db.WithContext(ctx).
		Table("waste_collection AS wc").
		Select("wc.id, wc.description, wc.waste_entry_id, wc.status, we.category, we.quantity, u.username AS requested_by, wc.created_at").
		Joins("JOIN users u ON u.id = wc.user_id").
		Joins("JOIN waste_entries we ON we.id = wc.waste_entry_id").
		Where("wc.status = ?", model.CollectionStatusPending).
		Order("wc.created_at DESC, wc.id DESC").
		Scan(&pickups).Error
	if err != nil {
		return nil, err
	}
	return pickups, nil
}

// MarkCollected moves a pending request to Collected with a single
// conditional update, so concurrent callers produce exactly one winner.
// The referenced waste entry is marked Collected in the same transaction.
func (r *wasteCollectionRepository) MarkCollected(ctx context.Context, id uint, collector string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.WasteCollection{}).
			Where("id = ? AND status = ?", id, model.CollectionStatusPending).
			Updates(map[string]interface{}{
				"status":         model.CollectionStatusCollected,
				"collector_name": collector,
				"pickup_date":    at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.WasteCollection{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperrors.ErrNotFound
			}
			return apperrors.ErrAlreadyCollected
		}

		var collection model.WasteCollection
		if err := tx.Select("waste_entry_id").Where("id = ?", id).Take(&collection).Error; err != nil {
			return err
		}
		return tx.Model(&model.WasteEntry{}).
			Where("id = ?", collection.WasteEntryID).
			Update("status", model.EntryStatusCollected).Error
	})
}

func (r *wasteCollectionRepository) ListByRequester(ctx context.Context, userID uint) ([]model.WasteCollection, error) {
	return r.RecentByRequester(ctx, userID, -1)
}

// RecentByRequester lists newest requests first; a negative limit returns all.
func (r *wasteCollectionRepository) RecentByRequester(ctx context.Context, userID uint, limit int) ([]model.WasteCollection, error) {
	collections := make([]model.WasteCollection, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

// ListCollectedBy returns pickups completed by collector, most recent first.
func (r *wasteCollectionRepository) ListCollectedBy(ctx context.Context, collector string) ([]model.WasteCollection, error) {
	collections := make([]model.WasteCollection, 0)
	if err := r.db.WithContext(ctx).
		Where("collector_name = ? AND status = ?", collector, model.CollectionStatusCollected).
		Order("pickup_date DESC, id DESC").
		Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *wasteCollectionRepository) CountByRequester(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WasteCollection{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByStatus counts requests in status; an empty status counts all.
func (r *wasteCollectionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.WasteCollection{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}
