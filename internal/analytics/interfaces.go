package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecordRepository supplies the filtered record collections the engine
// aggregates over. Every query is bounded by a window or an as-of instant;
// the engine never issues unfiltered scans. Implementations must be safe for
// concurrent use.
type RecordRepository interface {
	// BookingsInWindow returns bookings created within w.
	BookingsInWindow(ctx context.Context, w DateWindow) ([]*Booking, error)

	// ListingsAsOf returns listings created before t, drafts included
	// (aggregation decides what to exclude).
	ListingsAsOf(ctx context.Context, t time.Time) ([]*Listing, error)

	// UsersAsOf returns users registered before t.
	UsersAsOf(ctx context.Context, t time.Time) ([]*User, error)

	// ReviewsInWindow returns reviews created within w.
	ReviewsInWindow(ctx context.Context, w DateWindow) ([]*Review, error)

	// RewardEntriesInWindow returns reward ledger entries created within w.
	RewardEntriesInWindow(ctx context.Context, w DateWindow) ([]*RewardLedgerEntry, error)

	// BookingCountsByListing returns confirmed/completed booking counts for
	// the window grouped by listing id, one aggregate query.
	BookingCountsByListing(ctx context.Context, w DateWindow) (map[uuid.UUID]int, error)

	// BookingCountForListing returns the confirmed/completed booking count
	// for a single listing in the window.
	BookingCountForListing(ctx context.Context, listingID uuid.UUID, w DateWindow) (int, error)

	// RecentBookings returns the most recent bookings within w joined with
	// guest and listing display fields. Listing is nil when the listing was
	// removed.
	RecentBookings(ctx context.Context, w DateWindow, limit int) ([]EnrichedBooking, error)

	// HostsByID returns the host users for the given ids, keyed by id.
	HostsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error)
}

// ReportExporter renders a finished report payload into a distributable
// document. The rendering side lives outside this engine.
type ReportExporter interface {
	Export(ctx context.Context, payload *ReportPayload) ([]byte, error)
}

// EnrichmentStrategy resolves per-listing booking counts for a window.
// Batched issues one grouped query; Sequential fans out one lookup per
// listing through a bounded worker pool. Both produce identical results.
type EnrichmentStrategy interface {
	BookingCounts(ctx context.Context, repo RecordRepository, listingIDs []uuid.UUID, w DateWindow) (map[uuid.UUID]int, error)
}
