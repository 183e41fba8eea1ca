package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the PostgreSQL-backed RecordRepository. All queries are
// bounded by the window arguments; there are no unfiltered scans.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new analytics repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// BookingsInWindow returns bookings created within the window
func (r *Repository) BookingsInWindow(ctx context.Context, w DateWindow) ([]*Booking, error) {
	query := `
		SELECT id, listing_id, guest_id, host_id, type, status,
		       COALESCE(total_amount, 0), COALESCE(service_fee, 0),
		       check_in, check_out, service_date, created_at
		FROM bookings
		WHERE created_at >= $1 AND created_at < $2
	`

	rows, err := r.db.Query(ctx, query, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*Booking, 0)
	for rows.Next() {
		b := &Booking{}
		err := rows.Scan(
			&b.ID, &b.ListingID, &b.GuestID, &b.HostID, &b.Type, &b.Status,
			&b.TotalAmount, &b.ServiceFee, &b.CheckIn, &b.CheckOut, &b.ServiceDate, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// ListingsAsOf returns listings created before t, drafts included
func (r *Repository) ListingsAsOf(ctx context.Context, t time.Time) ([]*Listing, error) {
	query := `
		SELECT id, host_id, type, title, location, COALESCE(price, 0),
		       COALESCE(rating, 0), COALESCE(review_count, 0), status, is_draft, created_at
		FROM listings
		WHERE created_at < $1
	`

	rows, err := r.db.Query(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("failed to get listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*Listing, 0)
	for rows.Next() {
		l := &Listing{}
		err := rows.Scan(
			&l.ID, &l.HostID, &l.Type, &l.Title, &l.Location, &l.Price,
			&l.Rating, &l.ReviewCount, &l.Status, &l.IsDraft, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// UsersAsOf returns users registered before t
func (r *Repository) UsersAsOf(ctx context.Context, t time.Time) ([]*User, error) {
	query := `
		SELECT id, role, account_status, display_name, created_at
		FROM users
		WHERE created_at < $1
	`

	rows, err := r.db.Query(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Role, &u.AccountStatus, &u.DisplayName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ReviewsInWindow returns reviews created within the window
func (r *Repository) ReviewsInWindow(ctx context.Context, w DateWindow) ([]*Review, error) {
	query := `
		SELECT listing_id, COALESCE(rating, 0), created_at
		FROM reviews
		WHERE created_at >= $1 AND created_at < $2
	`

	rows, err := r.db.Query(ctx, query, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		rv := &Review{}
		if err := rows.Scan(&rv.ListingID, &rv.Rating, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	return reviews, rows.Err()
}

// RewardEntriesInWindow returns reward ledger entries created within the window
func (r *Repository) RewardEntriesInWindow(ctx context.Context, w DateWindow) ([]*RewardLedgerEntry, error) {
	query := `
		SELECT user_id, COALESCE(points_issued, 0), COALESCE(points_redeemed, 0), created_at
		FROM reward_ledger
		WHERE created_at >= $1 AND created_at < $2
	`

	rows, err := r.db.Query(ctx, query, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*RewardLedgerEntry, 0)
	for rows.Next() {
		e := &RewardLedgerEntry{}
		if err := rows.Scan(&e.UserID, &e.PointsIssued, &e.PointsRedeemed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reward entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// BookingCountsByListing returns confirmed/completed booking counts grouped
// by listing id for the window, one aggregate query
func (r *Repository) BookingCountsByListing(ctx context.Context, w DateWindow) (map[uuid.UUID]int, error) {
	query := `
		SELECT listing_id, COUNT(*)
		FROM bookings
		WHERE created_at >= $1 AND created_at < $2
		  AND status IN ('confirmed', 'completed')
		GROUP BY listing_id
	`

	rows, err := r.db.Query(ctx, query, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan booking count: %w", err)
		}
		counts[id] = count
	}

	return counts, rows.Err()
}

// BookingCountForListing returns the confirmed/completed booking count for
// one listing in the window
func (r *Repository) BookingCountForListing(ctx context.Context, listingID uuid.UUID, w DateWindow) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE listing_id = $1
		  AND created_at >= $2 AND created_at < $3
		  AND status IN ('confirmed', 'completed')
	`

	var count int
	err := r.db.QueryRow(ctx, query, listingID, w.Start, w.End).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for listing: %w", err)
	}

	return count, nil
}

// RecentBookings returns the most recent bookings within the window joined
// with guest and listing display fields. The listing join is LEFT so a
// removed listing yields a nil summary instead of dropping the row.
func (r *Repository) RecentBookings(ctx context.Context, w DateWindow, limit int) ([]EnrichedBooking, error) {
	query := `
		SELECT b.id, COALESCE(u.display_name, ''), l.title,
		       COALESCE(b.total_amount, 0), b.status, b.created_at
		FROM bookings b
		LEFT JOIN users u ON u.id = b.guest_id
		LEFT JOIN listings l ON l.id = b.listing_id
		WHERE b.created_at >= $1 AND b.created_at < $2
		ORDER BY b.created_at DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, w.Start, w.End, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]EnrichedBooking, 0, limit)
	for rows.Next() {
		var eb EnrichedBooking
		var title *string
		err := rows.Scan(&eb.ID, &eb.GuestName, &title, &eb.TotalAmount, &eb.Status, &eb.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent booking: %w", err)
		}
		if title != nil {
			eb.Listing = &ListingSummary{Title: *title}
		}
		bookings = append(bookings, eb)
	}

	return bookings, rows.Err()
}

// HostsByID returns the host users for the given ids, keyed by id
func (r *Repository) HostsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*User, error) {
	query := `
		SELECT id, role, account_status, display_name, created_at
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get hosts: %w", err)
	}
	defer rows.Close()

	hosts := make(map[uuid.UUID]*User, len(ids))
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Role, &u.AccountStatus, &u.DisplayName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan host: %w", err)
		}
		hosts[u.ID] = u
	}

	return hosts, rows.Err()
}
