package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wastewise/internal/auth"
	"wastewise/internal/cache"
	apperrors "wastewise/internal/errors"
	"wastewise/internal/model"
	"wastewise/internal/repository"
)

// CollectionService manages pickup requests and their fulfilment.
type CollectionService interface {
	RequestCollection(ctx context.Context, owner auth.Identity, entryID uint, description string) (*model.WasteCollection, error)
	ListMine(ctx context.Context, owner auth.Identity) ([]model.WasteCollection, error)
	ListPending(ctx context.Context) ([]model.PendingPickup, error)
	MarkCollected(ctx context.Context, collector auth.Identity, id uint) error
	History(ctx context.Context, collector auth.Identity) ([]model.WasteCollection, error)
}

type collectionService struct {
	entries     repository.WasteEntryRepository
	collections repository.WasteCollectionRepository
	cache       cache.Store
	activity    ActivityRecorder
	now         func() time.Time
}

// NewCollectionService creates a new collection service.
func NewCollectionService(
	entries repository.WasteEntryRepository,
	collections repository.WasteCollectionRepository,
	store cache.Store,
	activity ActivityRecorder,
) CollectionService {
	return &collectionService{
		entries:     entries,
		collections: collections,
		cache:       store,
		activity:    activity,
		now:         time.Now,
	}
}

// RequestCollection files a pickup for an entry the caller owns. Entries of
// other users are reported as not found.
func (s *collectionService) RequestCollection(ctx context.Context, owner auth.Identity, entryID uint, description string) (*model.WasteCollection, error) {
	if entryID == 0 {
		return nil, apperrors.Validation("waste_entry_id is required")
	}

	entry, err := s.entries.FindByIDForOwner(ctx, entryID, owner.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("waste entry %d: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("find waste entry: %w", err)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = entry.Description
	}

	collection := &model.WasteCollection{
		Description:  description,
		UserID:       owner.ID,
		WasteEntryID: entry.ID,
	}
	if err := s.collections.CreateForEntry(ctx, collection); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrCollectionExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create collection request: %w", err)
	}

	invalidateSummary(ctx, s.cache, owner.ID)
	s.activity.Record(ctx, model.ActivityLog{UserID: owner.ID, Action: model.ActionCollectionRequested, SubjectID: collection.ID})
	return collection, nil
}

func (s *collectionService) ListMine(ctx context.Context, owner auth.Identity) ([]model.WasteCollection, error) {
	collections, err := s.collections.ListByRequester(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list collection requests: %w", err)
	}
	return collections, nil
}

func (s *collectionService) ListPending(ctx context.Context) ([]model.PendingPickup, error) {
	pickups, err := s.collections.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending pickups: %w", err)
	}
	return pickups, nil
}

// MarkCollected completes a pending pickup. A second call for the same
// request returns ErrAlreadyCollected and changes nothing.
func (s *collectionService) MarkCollected(ctx context.Context, collector auth.Identity, id uint) error {
	if err := s.collections.MarkCollected(ctx, id, collector.Username, s.now()); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("collection request %d: %w", id, apperrors.ErrNotFound)
		case errors.Is(err, apperrors.ErrAlreadyCollected):
			return fmt.Errorf("collection request %d: %w", id, apperrors.ErrAlreadyCollected)
		default:
			return fmt.Errorf("mark collection collected: %w", err)
		}
	}

	s.activity.Record(ctx, model.ActivityLog{UserID: collector.ID, Action: model.ActionCollectionCollected, SubjectID: id})
	return nil
}

func (s *collectionService) History(ctx context.Context, collector auth.Identity) ([]model.WasteCollection, error) {
	collections, err := s.collections.ListCollectedBy(ctx, collector.Username)
	if err != nil {
		return nil, fmt.Errorf("list collection history: %w", err)
	}
	return collections, nil
}
