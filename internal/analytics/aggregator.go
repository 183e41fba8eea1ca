package analytics

// Pure aggregation over fetched record sets. All ratios are zero-guarded and
// missing numeric fields are treated as zero so partial data never blocks a
// dashboard render.

// metricPolarity marks whether growth is good for a metric family.
type metricPolarity int

const (
	higherIsBetter metricPolarity = iota
	lowerIsBetter // refunds: fewer is "up"
)

// AggregateStats computes the dashboard metric families for the current
// window against the previous window.
func AggregateStats(curr, prev *RecordSet) *DashboardStats {
	currPoints := sumPoints(curr.RewardEntries)
	prevPoints := sumPoints(prev.RewardEntries)

	return &DashboardStats{
		Bookings: newSnapshot(float64(len(curr.Bookings)), float64(len(prev.Bookings)), higherIsBetter),
		Users:    newSnapshot(float64(countActiveUsers(curr.Users)), float64(countActiveUsers(prev.Users)), higherIsBetter),
		Revenue:  newSnapshot(sumServiceFees(curr.Bookings), sumServiceFees(prev.Bookings), higherIsBetter),
		Listings: newSnapshot(float64(countRankableListings(curr.Listings)), float64(countRankableListings(prev.Listings)), higherIsBetter),
		Points: PointsSnapshot{
			MetricSnapshot: newSnapshot(float64(currPoints.issued), float64(prevPoints.issued), higherIsBetter),
			Redeemed:       float64(currPoints.redeemed),
			RedemptionRate: RedemptionRate(currPoints.redeemed, currPoints.issued),
		},
		Refunds: newSnapshot(float64(countRefunds(curr.Bookings)), float64(countRefunds(prev.Bookings)), lowerIsBetter),
	}
}

// PercentChange returns (curr-prev)/prev*100. A zero previous value yields
// 0.0 even when curr is positive: the dashboard shows a flat change rather
// than an infinite one when a metric appears for the first time. This is a
// deliberate display-stability policy, not a bug.
func PercentChange(curr, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (curr - prev) / prev * 100
}

// RedemptionRate returns redeemed/issued*100, 0.0 when nothing was issued.
func RedemptionRate(redeemed, issued int) float64 {
	if issued == 0 {
		return 0
	}
	return float64(redeemed) / float64(issued) * 100
}

func newSnapshot(curr, prev float64, polarity metricPolarity) MetricSnapshot {
	return MetricSnapshot{
		Current:  curr,
		Previous: prev,
		Change:   PercentChange(curr, prev),
		Trend:    trendOf(curr, prev, polarity),
	}
}

func trendOf(curr, prev float64, polarity metricPolarity) Trend {
	if curr == prev {
		return TrendFlat
	}
	rising := curr > prev
	if polarity == lowerIsBetter {
		rising = !rising
	}
	if rising {
		return TrendUp
	}
	return TrendDown
}

// sumServiceFees totals the platform take on revenue-bearing bookings.
// Gross totalAmount is never revenue.
func sumServiceFees(bookings []*Booking) float64 {
	var total float64
	for _, b := range bookings {
		if b.Revenue() {
			total += b.ServiceFee
		}
	}
	return total
}

func countActiveUsers(users []*User) int {
	n := 0
	for _, u := range users {
		if u.AccountStatus == AccountActive {
			n++
		}
	}
	return n
}

func countRankableListings(listings []*Listing) int {
	n := 0
	for _, l := range listings {
		if l.Rankable() {
			n++
		}
	}
	return n
}

func countRefunds(bookings []*Booking) int {
	n := 0
	for _, b := range bookings {
		if b.Status == StatusRefunded || b.Status == StatusRefundRequested {
			n++
		}
	}
	return n
}

type pointTotals struct {
	issued   int
	redeemed int
}

func sumPoints(entries []*RewardLedgerEntry) pointTotals {
	var t pointTotals
	for _, e := range entries {
		t.issued += e.PointsIssued
		t.redeemed += e.PointsRedeemed
	}
	return t
}
