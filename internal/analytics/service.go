package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stayfinder/booking-platform/pkg/config"
	"github.com/stayfinder/booking-platform/pkg/logger"
	"github.com/stayfinder/booking-platform/pkg/redis"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// recentBookingsLimit is the size of the dashboard's recent-activity table.
const recentBookingsLimit = 10

// dashboardCacheKey is the Redis key for the cached dashboard payload.
const dashboardCacheKey = "analytics:dashboard:v1"

// Service is the analytics engine entry point. It orchestrates the date
// resolver, repository fetches, aggregation, ranking and report building.
// Each call is request-scoped; the service holds no mutable state between
// calls, so no locking is needed.
type Service struct {
	repo        RecordRepository
	exporter    ReportExporter
	cache       *redis.Client
	enrich      EnrichmentStrategy
	windowDays  int
	rankingSize int
	cacheTTL    time.Duration
	now         func() time.Time
}

// NewService creates a new analytics service. exporter and cache may be nil:
// export then returns an error and the dashboard is computed fresh on every
// call.
func NewService(repo RecordRepository, exporter ReportExporter, cache *redis.Client, cfg *config.DashboardConfig) *Service {
	return &Service{
		repo:        repo,
		exporter:    exporter,
		cache:       cache,
		enrich:      BatchedEnrichment{},
		windowDays:  cfg.WindowDays,
		rankingSize: cfg.RankingSize,
		cacheTTL:    time.Duration(cfg.CacheTTL) * time.Second,
		now:         time.Now,
	}
}

// WithEnrichmentStrategy swaps the per-listing booking-count strategy.
func (s *Service) WithEnrichmentStrategy(strategy EnrichmentStrategy) *Service {
	s.enrich = strategy
	return s
}

// GetDashboardData returns the admin dashboard payload for the fixed
// trailing window and its predecessor.
func (s *Service) GetDashboardData(ctx context.Context) (*DashboardPayload, error) {
	if cached := s.cachedDashboard(ctx); cached != nil {
		return cached, nil
	}

	rng := TrailingWindow(s.windowDays, s.now())

	curr, prev, err := s.fetchWindows(ctx, rng)
	if err != nil {
		return nil, err
	}

	counts, err := s.bookingCounts(ctx, curr.Listings, rng.Current)
	if err != nil {
		return nil, aggErr("booking counts", err)
	}

	recent, err := s.repo.RecentBookings(ctx, rng.Current, recentBookingsLimit)
	if err != nil {
		return nil, aggErr("recent bookings", err)
	}

	payload := &DashboardPayload{
		Stats:            AggregateStats(curr, prev),
		TopRatedListings: TopRated(curr.Listings, counts, s.rankingSize),
		LowRatedListings: BottomRated(curr.Listings, counts, s.rankingSize),
		RecentBookings:   recent,
	}

	s.storeDashboard(ctx, payload)
	return payload, nil
}

// GenerateFinancialReportData builds the financial report for the range.
func (s *Service) GenerateFinancialReportData(ctx context.Context, q RangeQuery) (*ReportPayload, error) {
	return s.BuildReport(ctx, ReportFinancial, q)
}

// GenerateBookingsReportData builds the bookings report for the range.
func (s *Service) GenerateBookingsReportData(ctx context.Context, q RangeQuery) (*ReportPayload, error) {
	return s.BuildReport(ctx, ReportBookings, q)
}

// GenerateHostsReportData builds the host performance report for the range.
func (s *Service) GenerateHostsReportData(ctx context.Context, q RangeQuery) (*ReportPayload, error) {
	return s.BuildReport(ctx, ReportHosts, q)
}

// GenerateListingsReportData builds the listing analytics report for the range.
func (s *Service) GenerateListingsReportData(ctx context.Context, q RangeQuery) (*ReportPayload, error) {
	return s.BuildReport(ctx, ReportListings, q)
}

// BuildReport resolves the range, fetches both windows and assembles the
// requested report shape. Side-effect free: preview and export call the
// same path and get identical payloads for unchanged repository state.
func (s *Service) BuildReport(ctx context.Context, reportType ReportType, q RangeQuery) (*ReportPayload, error) {
	rng, err := ResolveRange(q, s.now())
	if err != nil {
		return nil, err
	}

	curr, _, err := s.fetchWindows(ctx, rng)
	if err != nil {
		return nil, err
	}

	payload := &ReportPayload{
		Type:        reportType,
		Window:      rng.Current,
		GeneratedAt: s.now(),
	}

	switch reportType {
	case ReportFinancial:
		payload.Financial = BuildFinancialReport(curr)
	case ReportBookings:
		payload.Bookings = BuildBookingsReport(curr)
	case ReportHosts:
		hosts, err := s.hostsForBookings(ctx, curr.Bookings)
		if err != nil {
			return nil, aggErr("host lookup", err)
		}
		payload.Hosts = BuildHostsReport(curr, TopHosts(curr.Bookings, hosts, s.rankingSize))
	case ReportListings:
		counts, err := s.bookingCounts(ctx, curr.Listings, rng.Current)
		if err != nil {
			return nil, aggErr("booking counts", err)
		}
		payload.Listings = BuildListingsReport(rng.Current, curr, TopListings(curr.Listings, counts, s.rankingSize))
	default:
		return nil, fmt.Errorf("unknown report type %q", reportType)
	}

	return payload, nil
}

// ExportReport builds the report and hands it to the export collaborator.
func (s *Service) ExportReport(ctx context.Context, reportType ReportType, q RangeQuery) ([]byte, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("no report exporter configured")
	}

	payload, err := s.BuildReport(ctx, reportType, q)
	if err != nil {
		return nil, err
	}

	doc, err := s.exporter.Export(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("export %s report: %w", reportType, err)
	}
	return doc, nil
}

// fetchWindows loads the record sets for the current and previous windows.
// The two windows are independent, so all ten collection fetches run
// concurrently; a caller cancellation aborts the whole group.
func (s *Service) fetchWindows(ctx context.Context, rng ResolvedRange) (*RecordSet, *RecordSet, error) {
	var curr, prev RecordSet

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range []struct {
		window DateWindow
		dest   *RecordSet
	}{
		{rng.Current, &curr},
		{rng.Previous, &prev},
	} {
		w, dest := f.window, f.dest
		g.Go(func() (err error) {
			dest.Bookings, err = s.repo.BookingsInWindow(ctx, w)
			return err
		})
		g.Go(func() (err error) {
			dest.Listings, err = s.repo.ListingsAsOf(ctx, w.End)
			return err
		})
		g.Go(func() (err error) {
			dest.Users, err = s.repo.UsersAsOf(ctx, w.End)
			return err
		})
		g.Go(func() (err error) {
			dest.Reviews, err = s.repo.ReviewsInWindow(ctx, w)
			return err
		})
		g.Go(func() (err error) {
			dest.RewardEntries, err = s.repo.RewardEntriesInWindow(ctx, w)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, aggErr("window fetch", err)
	}
	return &curr, &prev, nil
}

// bookingCounts resolves per-listing booking counts for the rankable
// listings via the configured enrichment strategy.
func (s *Service) bookingCounts(ctx context.Context, listings []*Listing, w DateWindow) (map[uuid.UUID]int, error) {
	ids := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		if l.Rankable() {
			ids = append(ids, l.ID)
		}
	}
	return s.enrich.BookingCounts(ctx, s.repo, ids, w)
}

// hostsForBookings resolves the distinct host users referenced by bookings.
func (s *Service) hostsForBookings(ctx context.Context, bookings []*Booking) (map[uuid.UUID]*User, error) {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, b := range bookings {
		if !seen[b.HostID] {
			seen[b.HostID] = true
			ids = append(ids, b.HostID)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*User{}, nil
	}
	return s.repo.HostsByID(ctx, ids)
}

// cachedDashboard returns the cached payload, or nil on miss or when
// caching is disabled. Cache failures are logged and treated as misses.
func (s *Service) cachedDashboard(ctx context.Context) *DashboardPayload {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}

	raw, err := s.cache.GetString(ctx, dashboardCacheKey)
	if err != nil {
		if !isCacheMiss(err) {
			logger.WithContext(ctx).Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}

	var payload DashboardPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.WithContext(ctx).Warn("discarding malformed dashboard cache entry", zap.Error(err))
		return nil
	}
	return &payload
}

// isCacheMiss distinguishes an absent key from a cache failure. Only real
// failures are worth a log line; misses are the steady state after expiry.
func isCacheMiss(err error) bool {
	return errors.Is(err, goredis.Nil)
}

// storeDashboard caches the payload best-effort.
func (s *Service) storeDashboard(ctx context.Context, payload *DashboardPayload) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.cache.SetWithExpiration(ctx, dashboardCacheKey, raw, s.cacheTTL); err != nil {
		logger.WithContext(ctx).Warn("failed to cache dashboard payload", zap.Error(err))
	}
}
