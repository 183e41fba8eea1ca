package analytics

import (
	"time"

	"github.com/google/uuid"
)

// BookingType distinguishes the three marketplace verticals.
type BookingType string

const (
	TypeStays       BookingType = "stays"
	TypeExperiences BookingType = "experiences"
	TypeServices    BookingType = "services"
)

// BookingStatus is the lifecycle label on a booking. Transitions are owned
// by the booking service; this engine only reads the label.
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusRejected        BookingStatus = "rejected"
	StatusCompleted       BookingStatus = "completed"
	StatusRefundRequested BookingStatus = "refund_requested"
	StatusRefunded        BookingStatus = "refunded"
)

// ListingStatus marks whether a listing is visible to guests.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingInactive ListingStatus = "inactive"
)

// UserRole identifies the account type.
type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleHost  UserRole = "host"
	RoleAdmin UserRole = "admin"
)

// AccountActive is the account status of users counted in user metrics.
const AccountActive = "active"

// Booking is a transactional booking record (read-only here)
type Booking struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	ListingID   uuid.UUID     `json:"listing_id" db:"listing_id"`
	GuestID     uuid.UUID     `json:"guest_id" db:"guest_id"`
	HostID      uuid.UUID     `json:"host_id" db:"host_id"`
	Type        BookingType   `json:"type" db:"type"`
	Status      BookingStatus `json:"status" db:"status"`
	TotalAmount float64       `json:"total_amount" db:"total_amount"`
	ServiceFee  float64       `json:"service_fee" db:"service_fee"`
	CheckIn     *time.Time    `json:"check_in,omitempty" db:"check_in"`
	CheckOut    *time.Time    `json:"check_out,omitempty" db:"check_out"`
	ServiceDate *time.Time    `json:"service_date,omitempty" db:"service_date"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// Revenue reports whether the booking contributes to platform revenue.
// Only the service-fee portion of confirmed or completed bookings counts;
// refunded bookings are excluded entirely.
func (b *Booking) Revenue() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// Listing is a marketplace listing record (read-only here)
type Listing struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	HostID      uuid.UUID     `json:"host_id" db:"host_id"`
	Type        BookingType   `json:"type" db:"type"`
	Title       string        `json:"title" db:"title"`
	Location    string        `json:"location" db:"location"`
	Price       float64       `json:"price" db:"price"`
	Rating      float64       `json:"rating" db:"rating"`
	ReviewCount int           `json:"review_count" db:"review_count"`
	Status      ListingStatus `json:"status" db:"status"`
	IsDraft     bool          `json:"is_draft" db:"is_draft"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// Rankable reports whether the listing may appear in rankings and
// aggregates. Drafts and inactive listings never do.
func (l *Listing) Rankable() bool {
	return !l.IsDraft && l.Status == ListingActive
}

// User is a platform account record (read-only here)
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Role          UserRole  `json:"role" db:"role"`
	AccountStatus string    `json:"account_status" db:"account_status"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Review is a guest review record (read-only here)
type Review struct {
	ListingID uuid.UUID `json:"listing_id" db:"listing_id"`
	Rating    float64   `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RewardLedgerEntry is one reward-point ledger row (read-only here)
type RewardLedgerEntry struct {
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	PointsIssued   int       `json:"points_issued" db:"points_issued"`
	PointsRedeemed int       `json:"points_redeemed" db:"points_redeemed"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// DateWindow is a half-open date range: Start is inclusive at 00:00:00 of
// the first day, End is exclusive at 00:00:00 of the day after the last day.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the window length
func (w DateWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the window
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ResolvedRange pairs a window with the immediately preceding window of
// identical duration (no gap, no overlap).
type ResolvedRange struct {
	Current  DateWindow `json:"current"`
	Previous DateWindow `json:"previous"`
}

// RecordSet is the request-scoped working set for one window: bookings,
// reviews and reward entries created within the window, listings and users
// existing as of the window end.
type RecordSet struct {
	Bookings      []*Booking
	Listings      []*Listing
	Users         []*User
	Reviews       []*Review
	RewardEntries []*RewardLedgerEntry
}

// Trend is the qualitative direction of a metric between windows.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// MetricSnapshot is a named metric compared against the previous window.
// Never persisted; recomputed per request.
type MetricSnapshot struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
	Trend    Trend   `json:"trend"`
}

// PointsSnapshot extends MetricSnapshot with redemption figures. Current is
// total points issued in the window.
type PointsSnapshot struct {
	MetricSnapshot
	Redeemed       float64 `json:"redeemed"`
	RedemptionRate float64 `json:"redemption_rate"`
}

// DashboardStats holds one snapshot per metric family.
type DashboardStats struct {
	Bookings MetricSnapshot `json:"bookings"`
	Users    MetricSnapshot `json:"users"`
	Revenue  MetricSnapshot `json:"revenue"`
	Listings MetricSnapshot `json:"listings"`
	Points   PointsSnapshot `json:"points"`
	Refunds  MetricSnapshot `json:"refunds"`
}

// RankingEntry is one row of a listing ranking, denormalized so the UI can
// render it without further lookups.
type RankingEntry struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Location     string      `json:"location"`
	Type         BookingType `json:"type"`
	Rating       float64     `json:"rating"`
	ReviewCount  int         `json:"review_count"`
	BookingCount int         `json:"booking_count"`
}

// HostRankingEntry is one row of a host ranking.
type HostRankingEntry struct {
	ID                uuid.UUID `json:"id"`
	HostName          string    `json:"host_name"`
	TotalEarnings     float64   `json:"total_earnings"`
	ConfirmedBookings int       `json:"confirmed_bookings"`
}

// ListingSummary is the minimal listing projection attached to an enriched
// booking. A nil pointer means the listing has since been removed.
type ListingSummary struct {
	Title string `json:"title"`
}

// EnrichedBooking is a booking row joined with guest and listing display
// fields for the dashboard's recent-activity table.
type EnrichedBooking struct {
	ID          uuid.UUID       `json:"id"`
	GuestName   string          `json:"guest_name"`
	Listing     *ListingSummary `json:"listing"`
	CreatedAt   time.Time       `json:"created_at"`
	TotalAmount float64         `json:"total_amount"`
	Status      BookingStatus   `json:"status"`
}

// DashboardPayload is the complete admin dashboard response.
type DashboardPayload struct {
	Stats            *DashboardStats   `json:"stats"`
	TopRatedListings []RankingEntry    `json:"top_rated_listings"`
	LowRatedListings []RankingEntry    `json:"low_rated_listings"`
	RecentBookings   []EnrichedBooking `json:"recent_bookings"`
}

// ReportType selects one of the four fixed report shapes.
type ReportType string

const (
	ReportFinancial ReportType = "financial"
	ReportBookings  ReportType = "bookings"
	ReportHosts     ReportType = "hosts"
	ReportListings  ReportType = "listings"
)

// FinancialReport summarizes money movement for a window.
type FinancialReport struct {
	TotalRevenue  float64                 `json:"total_revenue"`
	ServiceFees   float64                 `json:"service_fees"`
	Transactions  int                     `json:"transactions"`
	Refunds       float64                 `json:"refunds"`
	RevenueByType map[BookingType]float64 `json:"revenue_by_type"`
}

// BookingsReport summarizes booking volume and conversion for a window.
type BookingsReport struct {
	TotalBookings       int                   `json:"total_bookings"`
	ConfirmedBookings   int                   `json:"confirmed_bookings"`
	CompletionRate      float64               `json:"completion_rate"`
	AverageBookingValue float64               `json:"average_booking_value"`
	BookingsByType      map[BookingType]int   `json:"bookings_by_type"`
	StatusBreakdown     map[BookingStatus]int `json:"status_breakdown"`
}

// HostsReport summarizes host performance for a window.
type HostsReport struct {
	TotalHosts    int                `json:"total_hosts"`
	ActiveHosts   int                `json:"active_hosts"`
	TotalEarnings float64            `json:"total_earnings"`
	AverageRating float64            `json:"average_rating"`
	TopHosts      []HostRankingEntry `json:"top_hosts"`
}

// ListingsReport summarizes listing inventory and performance for a window.
type ListingsReport struct {
	TotalListings  int                 `json:"total_listings"`
	ActiveListings int                 `json:"active_listings"`
	NewListings    int                 `json:"new_listings"`
	ConversionRate float64             `json:"conversion_rate"`
	ListingsByType map[BookingType]int `json:"listings_by_type"`
	TopListings    []RankingEntry      `json:"top_listings"`
}

// ReportPayload is the complete, type-specific report returned for preview
// and export. Exactly one of the typed sections is set.
type ReportPayload struct {
	Type        ReportType       `json:"type"`
	Window      DateWindow       `json:"window"`
	GeneratedAt time.Time        `json:"generated_at"`
	Financial   *FinancialReport `json:"financial,omitempty"`
	Bookings    *BookingsReport  `json:"bookings,omitempty"`
	Hosts       *HostsReport     `json:"hosts,omitempty"`
	Listings    *ListingsReport  `json:"listings,omitempty"`
}
