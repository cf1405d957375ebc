package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wastewise/internal/auth"
	"wastewise/internal/cache"
	apperrors "wastewise/internal/errors"
	"wastewise/internal/model"
	"wastewise/internal/repository"
)

// CreateDonationInput carries the fields of a new food donation.
type CreateDonationInput struct {
	Description string
	Quantity    decimal.Decimal
	DonorName   string
	Contact     string
}

// DonationService manages food donations.
type DonationService interface {
	Create(ctx context.Context, owner auth.Identity, in CreateDonationInput) (*model.FoodDonation, error)
	ListMine(ctx context.Context, owner auth.Identity) ([]model.FoodDonation, error)
	ListPending(ctx context.Context) ([]model.FoodDonation, error)
	MarkCollected(ctx context.Context, collector auth.Identity, id uint) error
	History(ctx context.Context, collector auth.Identity) ([]model.FoodDonation, error)
}

type donationService struct {
	donations repository.FoodDonationRepository
	cache     cache.Store
	activity  ActivityRecorder
	now       func() time.Time
}

// NewDonationService creates a new donation service.
func NewDonationService(donations repository.FoodDonationRepository, store cache.Store, activity ActivityRecorder) DonationService {
	return &donationService{donations: donations, cache: store, activity: activity, now: time.Now}
}

func (s *donationService) Create(ctx context.Context, owner auth.Identity, in CreateDonationInput) (*model.FoodDonation, error) {
	donation := &model.FoodDonation{
		UserID:      owner.ID,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		DonorName:   strings.TrimSpace(in.DonorName),
		Contact:     strings.TrimSpace(in.Contact),
	}
	if donation.Description == "" || donation.DonorName == "" || donation.Contact == "" {
		return nil, apperrors.Validation("description, donor_name and contact are required")
	}
	if !in.Quantity.IsPositive() {
		return nil, apperrors.Validation("quantity must be greater than zero")
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("create food donation: %w", err)
	}

	invalidateSummary(ctx, s.cache, owner.ID)
	s.activity.Record(ctx, model.ActivityLog{UserID: owner.ID, Action: model.ActionDonationCreated, SubjectID: donation.ID})
	return donation, nil
}

func (s *donationService) ListMine(ctx context.Context, owner auth.Identity) ([]model.FoodDonation, error) {
	donations, err := s.donations.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list food donations: %w", err)
	}
	return donations, nil
}

func (s *donationService) ListPending(ctx context.Context) ([]model.FoodDonation, error) {
	donations, err := s.donations.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending donations: %w", err)
	}
	return donations, nil
}

func (s *donationService) MarkCollected(ctx context.Context, collector auth.Identity, id uint) error {
	if err := s.donations.MarkCollected(ctx, id, collector.Username, s.now()); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("food donation %d: %w", id, apperrors.ErrNotFound)
		case errors.Is(err, apperrors.ErrAlreadyCollected):
			return fmt.Errorf("food donation %d: %w", id, apperrors.ErrAlreadyCollected)
		default:
			return fmt.Errorf("mark donation collected: %w", err)
		}
	}

	s.activity.Record(ctx, model.ActivityLog{UserID: collector.ID, Action: model.ActionDonationCollected, SubjectID: id})
	return nil
}

func (s *donationService) History(ctx context.Context, collector auth.Identity) ([]model.FoodDonation, error) {
	donations, err := s.donations.ListCollectedBy(ctx, collector.Username)
	if err != nil {
		return nil, fmt.Errorf("list donation history: %w", err)
	}
	return donations, nil
}
