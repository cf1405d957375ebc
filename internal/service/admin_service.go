package service

import (
	"context"
	"fmt"

	"wastewise/internal/model"
	"wastewise/internal/repository"
)

const defaultActivityLimit = 50

// Stats are system-wide counts for administrators.
type Stats struct {
	Users              map[string]int64 `json:"users"`
	WasteEntries       int64            `json:"wasteEntries"`
	PendingCollections int64            `json:"pendingCollections"`
	CompletedPickups   int64            `json:"completedPickups"`
	FoodDonations      int64            `json:"foodDonations"`
	CollectedDonations int64            `json:"collectedDonations"`
}

// AdminService exposes global views.
type AdminService interface {
	Stats(ctx context.Context) (*Stats, error)
	Users(ctx context.Context, role string) ([]model.User, error)
	Activity(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

type adminService struct {
	users       repository.UserRepository
	entries     repository.WasteEntryRepository
	collections repository.WasteCollectionRepository
	donations   repository.FoodDonationRepository
	activity    repository.ActivityLogRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(
	users repository.UserRepository,
	entries repository.WasteEntryRepository,
	collections repository.WasteCollectionRepository,
	donations repository.FoodDonationRepository,
	activity repository.ActivityLogRepository,
) AdminService {
	return &adminService{
		users:       users,
		entries:     entries,
		collections: collections,
		donations:   donations,
		activity:    activity,
	}
}

func (s *adminService) Stats(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.Users, err = s.users.CountByRole(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.WasteEntries, err = s.entries.Count(ctx); err != nil {
		return nil, fmt.Errorf("count waste entries: %w", err)
	}
	if stats.PendingCollections, err = s.collections.CountByStatus(ctx, model.CollectionStatusPending); err != nil {
		return nil, fmt.Errorf("count pending collections: %w", err)
	}
	if stats.CompletedPickups, err = s.collections.CountByStatus(ctx, model.CollectionStatusCollected); err != nil {
		return nil, fmt.Errorf("count completed pickups: %w", err)
	}
	if stats.FoodDonations, err = s.donations.CountByStatus(ctx, ""); err != nil {
		return nil, fmt.Errorf("count donations: %w", err)
	}
	if stats.CollectedDonations, err = s.donations.CountByStatus(ctx, model.DonationStatusCollected); err != nil {
		return nil, fmt.Errorf("count collected donations: %w", err)
	}
	return &stats, nil
}

func (s *adminService) Users(ctx context.Context, role string) ([]model.User, error) {
	users, err := s.users.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *adminService) Activity(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultActivityLimit
	}
	logs, err := s.activity.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return logs, nil
}
