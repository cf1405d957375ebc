package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "wastewise/internal/errors"
	"wastewise/internal/model"
)

// FoodDonationRepository defines food donation persistence operations.
type FoodDonationRepository interface {
	Create(ctx context.Context, donation *model.FoodDonation) error
	ListByOwner(ctx context.Context, userID uint) ([]model.FoodDonation, error)
	RecentByOwner(ctx context.Context, userID uint, limit int) ([]model.FoodDonation, error)
	ListPending(ctx context.Context) ([]model.FoodDonation, error)
	ListCollectedBy(ctx context.Context, collector string) ([]model.FoodDonation, error)
	MarkCollected(ctx context.Context, id uint, collector string, at time.Time) error
	CountByOwner(ctx context.Context, userID uint) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type foodDonationRepository struct {
	db *gorm.DB
}

// NewFoodDonationRepository creates a new food donation repository.
func NewFoodDonationRepository(db *gorm.DB) FoodDonationRepository {
	return &foodDonationRepository{db: db}
}

func (r *foodDonationRepository) Create(ctx context.Context, donation *model.FoodDonation) error {
	donation.Status = model.DonationStatusPending
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *foodDonationRepository) ListByOwner(ctx context.Context, userID uint) ([]model.FoodDonation, error) {
	return r.RecentByOwner(ctx, userID, -1)
}

func (r *foodDonationRepository) RecentByOwner(ctx context.Context, userID uint, limit int) ([]model.FoodDonation, error) {
	donations := make([]model.FoodDonation, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *foodDonationRepository) ListPending(ctx context.Context) ([]model.FoodDonation, error) {
	donations := make([]model.FoodDonation, 0)
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.DonationStatusPending).
		Order("created_at DESC, id DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *foodDonationRepository) ListCollectedBy(ctx context.Context, collector string) ([]model.FoodDonation, error) {
	donations := make([]model.FoodDonation, 0)
	if err := r.db.WithContext(ctx).
		Where("collected_by = ? AND status = ?", collector, model.DonationStatusCollected).
		Order("collected_at DESC, id DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// MarkCollected uses the same conditional update as collection requests.
func (r *foodDonationRepository) MarkCollected(ctx context.Context, id uint, collector string, at time.Time) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.FoodDonation{}).
		Where("id = ? AND status = ?", id, model.DonationStatusPending).
		Updates(map[string]interface{}{
			"status":       model.DonationStatusCollected,
			"collected_by": collector,
			"collected_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&model.FoodDonation{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrAlreadyCollected
}

func (r *foodDonationRepository) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.FoodDonation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountByStatus counts donations in status; an empty status counts all.
func (r *foodDonationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.FoodDonation{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}
