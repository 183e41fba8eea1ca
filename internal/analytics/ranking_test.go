package analytics

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopRated_TieBreakByReviewCount(t *testing.T) {
	established := fixtureListing("Established", 4.8, 200, 120)
	fresh := fixtureListing("Fresh", 4.8, 50, 90)

	entries := TopRated([]*Listing{fresh, established}, nil, 5)

	require.Len(t, entries, 2)
	assert.Equal(t, established.ID, entries[0].ID)
	assert.Equal(t, fresh.ID, entries[1].ID)
}

func TestTopRated_ExcludesDraftsAndInactive(t *testing.T) {
	live := fixtureListing("Live", 4.0, 10, 100)
	draft := fixtureListing("Draft", 5.0, 10, 100)
	draft.IsDraft = true
	inactive := fixtureListing("Inactive", 5.0, 10, 100)
	inactive.Status = ListingInactive

	entries := TopRated([]*Listing{live, draft, inactive}, nil, 5)

	require.Len(t, entries, 1)
	assert.Equal(t, live.ID, entries[0].ID)
}

func TestBottomRated_OrdersAscending(t *testing.T) {
	best := fixtureListing("Best", 4.9, 80, 100)
	worst := fixtureListing("Worst", 2.1, 15, 100)
	middle := fixtureListing("Middle", 3.5, 40, 100)

	entries := BottomRated([]*Listing{best, worst, middle}, nil, 2)

	require.Len(t, entries, 2)
	assert.Equal(t, worst.ID, entries[0].ID)
	assert.Equal(t, middle.ID, entries[1].ID)
}

func TestRanking_CapAndNoDuplicates(t *testing.T) {
	listings := make([]*Listing, 0, 10)
	for i := 0; i < 10; i++ {
		listings = append(listings, fixtureListing("L", float64(i)/2, i, 100))
	}
	// A repeated pointer must not yield a duplicate entry
	listings = append(listings, listings[0])

	entries := TopRated(listings, nil, 6)

	require.Len(t, entries, 6)
	seen := make(map[uuid.UUID]bool)
	for _, e := range entries {
		assert.False(t, seen[e.ID], "duplicate id in ranking")
		seen[e.ID] = true
	}
}

func TestRanking_OrderIndependentOfInput(t *testing.T) {
	listings := []*Listing{
		fixtureListing("A", 4.8, 200, 100),
		fixtureListing("B", 4.8, 50, 100),
		fixtureListing("C", 4.8, 50, 100),
		fixtureListing("D", 3.2, 10, 100),
		fixtureListing("E", 5.0, 1, 100),
	}

	reference := TopRated(listings, nil, 5)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]*Listing, len(listings))
		copy(shuffled, listings)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, reference, TopRated(shuffled, nil, 5))
	}
}

func TestPopularityThreshold(t *testing.T) {
	id := func() uuid.UUID { return uuid.New() }

	// min count 1 < floor: threshold stays at the floor of 2
	assert.Equal(t, 2, PopularityThreshold(map[uuid.UUID]int{id(): 1, id(): 3, id(): 3, id(): 5}))

	// min count equals the floor
	assert.Equal(t, 2, PopularityThreshold(map[uuid.UUID]int{id(): 2, id(): 2}))

	// min count above the floor raises the threshold
	assert.Equal(t, 3, PopularityThreshold(map[uuid.UUID]int{id(): 3, id(): 4}))

	// no booked listings at all
	assert.Equal(t, 2, PopularityThreshold(map[uuid.UUID]int{}))
}

func TestTopListings_AppliesPopularityThreshold(t *testing.T) {
	popular := fixtureListing("Popular", 4.0, 10, 100)
	alsoPopular := fixtureListing("AlsoPopular", 4.0, 10, 80)
	oneOff := fixtureListing("OneOff", 4.9, 5, 500)

	counts := map[uuid.UUID]int{
		popular.ID:     3,
		alsoPopular.ID: 3,
		oneOff.ID:      1, // below max(2, 1) = 2
	}

	entries := TopListings([]*Listing{popular, alsoPopular, oneOff}, counts, 5)

	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEqual(t, oneOff.ID, e.ID)
	}
}

func TestTopListings_RanksByRevenue(t *testing.T) {
	cheapButBusy := fixtureListing("CheapButBusy", 4.0, 10, 50)
	expensive := fixtureListing("Expensive", 4.0, 10, 300)

	counts := map[uuid.UUID]int{
		cheapButBusy.ID: 10, // revenue 500
		expensive.ID:    3,  // revenue 900
	}

	entries := TopListings([]*Listing{cheapButBusy, expensive}, counts, 5)

	require.Len(t, entries, 2)
	assert.Equal(t, expensive.ID, entries[0].ID)
	assert.Equal(t, 3, entries[0].BookingCount)
}

func TestTopHosts(t *testing.T) {
	bigHost := fixtureUser(RoleHost, AccountActive)
	smallHost := fixtureUser(RoleHost, AccountActive)

	bookings := []*Booking{
		fixtureBooking(TypeStays, StatusConfirmed, 1000, 100),
		fixtureBooking(TypeStays, StatusCompleted, 500, 50),
		fixtureBooking(TypeStays, StatusConfirmed, 300, 30),
		fixtureBooking(TypeStays, StatusPending, 9999, 999), // not counted
	}
	bookings[0].HostID = bigHost.ID
	bookings[1].HostID = bigHost.ID
	bookings[2].HostID = smallHost.ID
	bookings[3].HostID = smallHost.ID

	hosts := map[uuid.UUID]*User{bigHost.ID: bigHost, smallHost.ID: smallHost}

	entries := TopHosts(bookings, hosts, 5)

	require.Len(t, entries, 2)
	assert.Equal(t, bigHost.ID, entries[0].ID)
	// Host earnings are the gross amount net of the platform fee
	assert.Equal(t, 1350.0, entries[0].TotalEarnings)
	assert.Equal(t, 2, entries[0].ConfirmedBookings)
	assert.Equal(t, smallHost.ID, entries[1].ID)
	assert.Equal(t, 270.0, entries[1].TotalEarnings)
}

func TestTopHosts_CapsAtN(t *testing.T) {
	bookings := make([]*Booking, 0, 8)
	for i := 0; i < 8; i++ {
		bookings = append(bookings, fixtureBooking(TypeStays, StatusConfirmed, float64(100*(i+1)), 10))
	}

	entries := TopHosts(bookings, map[uuid.UUID]*User{}, 3)

	assert.Len(t, entries, 3)
}
