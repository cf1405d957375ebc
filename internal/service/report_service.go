package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"wastewise/internal/auth"
	"wastewise/internal/cache"
	"wastewise/internal/model"
	"wastewise/internal/repository"
)

// NoCategory is reported as the common category when there are no entries.
const NoCategory = "-"

const recentActivityPerKind = 3

// CategorySeries is a chart-ready label/value pair list.
type CategorySeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Summary is the per-user dashboard summary.
type Summary struct {
	TotalWaste       float64        `json:"totalWaste"`
	TotalEntries     int64          `json:"totalEntries"`
	TotalDonations   int64          `json:"totalDonations"`
	TotalCollections int64          `json:"totalCollections"`
	CommonCategory   string         `json:"commonCategory"`
	WasteByCategory  CategorySeries `json:"wasteByCategory"`
}

// CategoryTotal is the summed quantity for one waste category.
type CategoryTotal struct {
	Category      string  `json:"category"`
	TotalQuantity float64 `json:"total_quantity"`
}

// DailyDonations counts donations created on one calendar day (UTC).
type DailyDonations struct {
	Date           string `json:"date"`
	TotalDonations int    `json:"total_donations"`
}

// Dashboard holds per-user record counts.
type Dashboard struct {
	WasteEntries       int64 `json:"wasteEntries"`
	CollectionRequests int64 `json:"collectionRequests"`
	FoodDonations      int64 `json:"foodDonations"`
}

// ReportService builds read-only aggregates for the caller.
type ReportService interface {
	Summary(ctx context.Context, owner auth.Identity) (*Summary, error)
	WasteByCategory(ctx context.Context, owner auth.Identity) ([]CategoryTotal, error)
	DonationsByDay(ctx context.Context, owner auth.Identity) ([]DailyDonations, error)
	Dashboard(ctx context.Context, owner auth.Identity) (*Dashboard, error)
	RecentActivities(ctx context.Context, owner auth.Identity) ([]model.Activity, error)
}

type reportService struct {
	entries     repository.WasteEntryRepository
	collections repository.WasteCollectionRepository
	donations   repository.FoodDonationRepository
	cache       cache.Store
	cacheTTL    time.Duration
}

// NewReportService creates a new report service. Summaries are cached for cacheTTL.
func NewReportService(
	entries repository.WasteEntryRepository,
	collections repository.WasteCollectionRepository,
	donations repository.FoodDonationRepository,
	store cache.Store,
	cacheTTL time.Duration,
) ReportService {
	return &reportService{
		entries:     entries,
		collections: collections,
		donations:   donations,
		cache:       store,
		cacheTTL:    cacheTTL,
	}
}

// Summary aggregates the caller's entries, donations and collection requests.
func (s *reportService) Summary(ctx context.Context, owner auth.Identity) (*Summary, error) {
	key := summaryKey(owner.ID)
	var cached Summary
	if cache.GetJSON(ctx, s.cache, key, &cached) {
		return &cached, nil
	}

	entries, err := s.entries.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list waste entries: %w", err)
	}
	donations, err := s.donations.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("count donations: %w", err)
	}
	collections, err := s.collections.CountByRequester(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("count collection requests: %w", err)
	}

	total, byCategory := aggregateWaste(entries)
	summary := &Summary{
		TotalWaste:       total.InexactFloat64(),
		TotalEntries:     int64(len(entries)),
		TotalDonations:   donations,
		TotalCollections: collections,
		CommonCategory:   commonCategory(byCategory),
		WasteByCategory: CategorySeries{
			Labels: make([]string, 0, len(byCategory)),
			Values: make([]float64, 0, len(byCategory)),
		},
	}
	for _, ct := range byCategory {
		summary.WasteByCategory.Labels = append(summary.WasteByCategory.Labels, ct.Category)
		summary.WasteByCategory.Values = append(summary.WasteByCategory.Values, ct.TotalQuantity)
	}

	cache.SetJSON(ctx, s.cache, key, summary, s.cacheTTL)
	return summary, nil
}

func (s *reportService) WasteByCategory(ctx context.Context, owner auth.Identity) ([]CategoryTotal, error) {
	entries, err := s.entries.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list waste entries: %w", err)
	}
	_, byCategory := aggregateWaste(entries)
	return byCategory, nil
}

func (s *reportService) DonationsByDay(ctx context.Context, owner auth.Identity) ([]DailyDonations, error) {
	donations, err := s.donations.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list food donations: %w", err)
	}

	counts := make(map[string]int)
	for _, d := range donations {
		counts[d.CreatedAt.UTC().Format(time.DateOnly)]++
	}
	days := make([]DailyDonations, 0, len(counts))
	for date, n := range counts {
		days = append(days, DailyDonations{Date: date, TotalDonations: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

func (s *reportService) Dashboard(ctx context.Context, owner auth.Identity) (*Dashboard, error) {
	entries, err := s.entries.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("count waste entries: %w", err)
	}
	collections, err := s.collections.CountByRequester(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("count collection requests: %w", err)
	}
	donations, err := s.donations.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("count donations: %w", err)
	}
	return &Dashboard{WasteEntries: entries, CollectionRequests: collections, FoodDonations: donations}, nil
}

// RecentActivities merges the latest few records of each kind, newest first.
func (s *reportService) RecentActivities(ctx context.Context, owner auth.Identity) ([]model.Activity, error) {
	entries, err := s.entries.RecentByOwner(ctx, owner.ID, recentActivityPerKind)
	if err != nil {
		return nil, fmt.Errorf("recent waste entries: %w", err)
	}
	collections, err := s.collections.RecentByRequester(ctx, owner.ID, recentActivityPerKind)
	if err != nil {
		return nil, fmt.Errorf("recent collection requests: %w", err)
	}
	donations, err := s.donations.RecentByOwner(ctx, owner.ID, recentActivityPerKind)
	if err != nil {
		return nil, fmt.Errorf("recent donations: %w", err)
	}

	activities := make([]model.Activity, 0, len(entries)+len(collections)+len(donations))
	for _, e := range entries {
		activities = append(activities, model.Activity{
			Type: "waste", ID: e.ID, Description: e.Description, Status: e.Status, CreatedAt: e.CreatedAt,
		})
	}
	for _, c := range collections {
		activities = append(activities, model.Activity{
			Type: "collection", ID: c.ID, Description: c.Description, Status: c.Status, CreatedAt: c.CreatedAt,
		})
	}
	for _, d := range donations {
		activities = append(activities, model.Activity{
			Type: "donation", ID: d.ID, Description: d.Description, Status: d.Status, CreatedAt: d.CreatedAt,
		})
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	return activities, nil
}

// aggregateWaste sums quantities exactly and returns per-category totals
// sorted by category name.
func aggregateWaste(entries []model.WasteEntry) (decimal.Decimal, []CategoryTotal) {
	total := decimal.Zero
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		total = total.Add(e.Quantity)
		sums[e.Category] = sums[e.Category].Add(e.Quantity)
	}

	categories := make([]string, 0, len(sums))
	for c := range sums {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	totals := make([]CategoryTotal, 0, len(categories))
	for _, c := range categories {
		totals = append(totals, CategoryTotal{Category: c, TotalQuantity: sums[c].InexactFloat64()})
	}
	return total, totals
}

// commonCategory picks the largest total; ties go to the lexicographically
// smallest name because totals arrive sorted by name.
func commonCategory(totals []CategoryTotal) string {
	best := NoCategory
	bestQty := 0.0
	for _, ct := range totals {
		if best == NoCategory || ct.TotalQuantity > bestQty {
			best = ct.Category
			bestQty = ct.TotalQuantity
		}
	}
	return best
}

func summaryKey(userID uint) string {
	return "summary:" + strconv.FormatUint(uint64(userID), 10)
}

// invalidateSummary drops the cached summary after a write by userID.
func invalidateSummary(ctx context.Context, store cache.Store, userID uint) {
	if store == nil {
		return
	}
	_ = store.Delete(ctx, summaryKey(userID))
}
