package analytics

import (
	"github.com/google/uuid"
)

// Report builders are pure: given the window's record set (and ranking
// output where a report carries rankings) they assemble the fixed report
// shape. Repeated calls over unchanged inputs produce identical payloads, so
// preview and export share one path.

// BuildFinancialReport assembles the financial report for a window.
func BuildFinancialReport(rs *RecordSet) *FinancialReport {
	report := &FinancialReport{
		RevenueByType: map[BookingType]float64{
			TypeStays:       0,
			TypeExperiences: 0,
			TypeServices:    0,
		},
	}

	for _, b := range rs.Bookings {
		switch {
		case b.Revenue():
			report.TotalRevenue += b.TotalAmount
			report.ServiceFees += b.ServiceFee
			report.Transactions++
			report.RevenueByType[b.Type] += b.TotalAmount
		case b.Status == StatusRefunded:
			report.Refunds += b.TotalAmount
		}
	}

	return report
}

// BuildBookingsReport assembles the bookings report for a window.
func BuildBookingsReport(rs *RecordSet) *BookingsReport {
	report := &BookingsReport{
		BookingsByType:  make(map[BookingType]int),
		StatusBreakdown: make(map[BookingStatus]int),
	}

	var totalValue float64
	for _, b := range rs.Bookings {
		report.TotalBookings++
		report.BookingsByType[b.Type]++
		report.StatusBreakdown[b.Status]++
		totalValue += b.TotalAmount
		if b.Status == StatusConfirmed || b.Status == StatusCompleted {
			report.ConfirmedBookings++
		}
	}

	if report.TotalBookings > 0 {
		report.CompletionRate = float64(report.ConfirmedBookings) / float64(report.TotalBookings) * 100
		report.AverageBookingValue = totalValue / float64(report.TotalBookings)
	}

	return report
}

// BuildHostsReport assembles the host performance report for a window.
func BuildHostsReport(rs *RecordSet, topHosts []HostRankingEntry) *HostsReport {
	report := &HostsReport{TopHosts: topHosts}

	for _, u := range rs.Users {
		if u.Role == RoleHost && u.AccountStatus == AccountActive {
			report.TotalHosts++
		}
	}

	// A host is active when it has at least one booking in the window.
	activeHosts := make(map[uuid.UUID]bool)
	for _, b := range rs.Bookings {
		activeHosts[b.HostID] = true
		if b.Revenue() {
			report.TotalEarnings += b.TotalAmount - b.ServiceFee
		}
	}
	report.ActiveHosts = len(activeHosts)

	if len(rs.Reviews) > 0 {
		var ratingSum float64
		for _, r := range rs.Reviews {
			ratingSum += r.Rating
		}
		report.AverageRating = ratingSum / float64(len(rs.Reviews))
	}

	return report
}

// BuildListingsReport assembles the listing analytics report for a window.
func BuildListingsReport(w DateWindow, rs *RecordSet, topListings []RankingEntry) *ListingsReport {
	report := &ListingsReport{
		ListingsByType: make(map[BookingType]int),
		TopListings:    topListings,
	}

	for _, l := range rs.Listings {
		if l.IsDraft {
			continue
		}
		report.TotalListings++
		report.ListingsByType[l.Type]++
		if l.Status == ListingActive {
			report.ActiveListings++
		}
		if w.Contains(l.CreatedAt) {
			report.NewListings++
		}
	}

	confirmed := 0
	for _, b := range rs.Bookings {
		if b.Status == StatusConfirmed || b.Status == StatusCompleted {
			confirmed++
		}
	}
	if report.TotalListings > 0 {
		report.ConversionRate = float64(confirmed) / float64(report.TotalListings) * 100
	}

	return report
}
