package analytics

import (
	"sort"

	"github.com/google/uuid"
)

// minPopularityFloor is the lowest booking count a listing can have and
// still be classified popular. The effective threshold is
// max(minPopularityFloor, min booking count across booked listings): when
// every booked listing has only one, possibly coincidental, booking, nothing
// qualifies. Changing this changes dashboard semantics.
const minPopularityFloor = 2

// TopRated returns up to n rankable listings ordered by rating descending.
// Ties are broken by review count descending so freshly-created listings
// with identical default ratings don't outrank established ones, then by id
// for determinism.
func TopRated(listings []*Listing, counts map[uuid.UUID]int, n int) []RankingEntry {
	return rankByRating(listings, counts, n, false)
}

// BottomRated returns up to n rankable listings ordered by rating ascending,
// with the same tie-breaks as TopRated.
func BottomRated(listings []*Listing, counts map[uuid.UUID]int, n int) []RankingEntry {
	return rankByRating(listings, counts, n, true)
}

func rankByRating(listings []*Listing, counts map[uuid.UUID]int, n int, ascending bool) []RankingEntry {
	eligible := rankableListings(listings)

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.Rating != b.Rating {
			if ascending {
				return a.Rating < b.Rating
			}
			return a.Rating > b.Rating
		}
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		return a.ID.String() < b.ID.String()
	})

	return toRankingEntries(eligible, counts, n)
}

// TopListings returns up to n rankable listings ordered by window revenue
// (price times confirmed booking count) descending. Listings below the
// popularity threshold are excluded. Ties are broken by booking count
// descending, then by id.
func TopListings(listings []*Listing, counts map[uuid.UUID]int, n int) []RankingEntry {
	threshold := PopularityThreshold(counts)

	var eligible []*Listing
	for _, l := range rankableListings(listings) {
		if counts[l.ID] >= threshold {
			eligible = append(eligible, l)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		ra := a.Price * float64(counts[a.ID])
		rb := b.Price * float64(counts[b.ID])
		if ra != rb {
			return ra > rb
		}
		if counts[a.ID] != counts[b.ID] {
			return counts[a.ID] > counts[b.ID]
		}
		return a.ID.String() < b.ID.String()
	})

	return toRankingEntries(eligible, counts, n)
}

// TopHosts returns up to n hosts ordered by window earnings descending.
// Earnings are the host's share (total amount minus service fee) of
// confirmed and completed bookings. Ties are broken by booking count
// descending, then by id.
func TopHosts(bookings []*Booking, hosts map[uuid.UUID]*User, n int) []HostRankingEntry {
	type hostAgg struct {
		id       uuid.UUID
		earnings float64
		count    int
	}

	aggs := make(map[uuid.UUID]*hostAgg)
	for _, b := range bookings {
		if !b.Revenue() {
			continue
		}
		agg, ok := aggs[b.HostID]
		if !ok {
			agg = &hostAgg{id: b.HostID}
			aggs[b.HostID] = agg
		}
		agg.earnings += b.TotalAmount - b.ServiceFee
		agg.count++
	}

	ordered := make([]*hostAgg, 0, len(aggs))
	for _, agg := range aggs {
		ordered = append(ordered, agg)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.earnings != b.earnings {
			return a.earnings > b.earnings
		}
		if a.count != b.count {
			return a.count > b.count
		}
		return a.id.String() < b.id.String()
	})

	if len(ordered) > n {
		ordered = ordered[:n]
	}

	entries := make([]HostRankingEntry, 0, len(ordered))
	for _, agg := range ordered {
		name := ""
		if host, ok := hosts[agg.id]; ok {
			name = host.DisplayName
		}
		entries = append(entries, HostRankingEntry{
			ID:                agg.id,
			HostName:          name,
			TotalEarnings:     agg.earnings,
			ConfirmedBookings: agg.count,
		})
	}
	return entries
}

// PopularityThreshold computes the minimum booking count a listing needs to
// be classified popular: the floor is minPopularityFloor but rises to match
// the least-booked booked listing when that minimum exceeds the floor.
func PopularityThreshold(counts map[uuid.UUID]int) int {
	min := 0
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		if min == 0 || c < min {
			min = c
		}
	}
	if min < minPopularityFloor {
		return minPopularityFloor
	}
	return min
}

func rankableListings(listings []*Listing) []*Listing {
	eligible := make([]*Listing, 0, len(listings))
	seen := make(map[uuid.UUID]bool, len(listings))
	for _, l := range listings {
		if l.Rankable() && !seen[l.ID] {
			seen[l.ID] = true
			eligible = append(eligible, l)
		}
	}
	return eligible
}

func toRankingEntries(listings []*Listing, counts map[uuid.UUID]int, n int) []RankingEntry {
	if len(listings) > n {
		listings = listings[:n]
	}
	entries := make([]RankingEntry, 0, len(listings))
	for _, l := range listings {
		entries = append(entries, RankingEntry{
			ID:           l.ID,
			Title:        l.Title,
			Location:     l.Location,
			Type:         l.Type,
			Rating:       l.Rating,
			ReviewCount:  l.ReviewCount,
			BookingCount: counts[l.ID],
		})
	}
	return entries
}
