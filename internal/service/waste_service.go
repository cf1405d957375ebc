package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"wastewise/internal/auth"
	"wastewise/internal/cache"
	apperrors "wastewise/internal/errors"
	"wastewise/internal/model"
	"wastewise/internal/repository"
)

// CreateWasteEntryInput carries the fields of a new waste entry.
type CreateWasteEntryInput struct {
	Description string
	Category    string
	Quantity    decimal.Decimal
	ImageURL    *string
}

// WasteService manages waste entries owned by the caller.
type WasteService interface {
	CreateEntry(ctx context.Context, owner auth.Identity, in CreateWasteEntryInput) (*model.WasteEntry, error)
	ListEntries(ctx context.Context, owner auth.Identity) ([]model.WasteEntry, error)
}

type wasteService struct {
	entries  repository.WasteEntryRepository
	cache    cache.Store
	activity ActivityRecorder
}

// NewWasteService creates a new waste service.
func NewWasteService(entries repository.WasteEntryRepository, store cache.Store, activity ActivityRecorder) WasteService {
	return &wasteService{entries: entries, cache: store, activity: activity}
}

func (s *wasteService) CreateEntry(ctx context.Context, owner auth.Identity, in CreateWasteEntryInput) (*model.WasteEntry, error) {
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if description == "" || category == "" {
		return nil, apperrors.Validation("description and category are required")
	}
	if !in.Quantity.IsPositive() {
		return nil, apperrors.Validation("quantity must be greater than zero")
	}

	entry := &model.WasteEntry{
		UserID:      owner.ID,
		Description: description,
		Category:    category,
		Quantity:    in.Quantity,
		ImageURL:    in.ImageURL,
		Status:      model.EntryStatusPending,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create waste entry: %w", err)
	}

	invalidateSummary(ctx, s.cache, owner.ID)
	s.activity.Record(ctx, model.ActivityLog{UserID: owner.ID, Action: model.ActionWasteLogged, SubjectID: entry.ID, Detail: category})
	return entry, nil
}

func (s *wasteService) ListEntries(ctx context.Context, owner auth.Identity) ([]model.WasteEntry, error) {
	entries, err := s.entries.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list waste entries: %w", err)
	}
	return entries, nil
}
