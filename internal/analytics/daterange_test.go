package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRange_PresetWindows(t *testing.T) {
	// Mid-afternoon reference time; windows must snap to day boundaries
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		preset RangePreset
		start  time.Time
		end    time.Time
	}{
		{PresetToday, today, tomorrow},
		{PresetYesterday, today.AddDate(0, 0, -1), today},
		{PresetLast7Days, tomorrow.AddDate(0, 0, -7), tomorrow},
		{PresetLast30Days, tomorrow.AddDate(0, 0, -30), tomorrow},
		{PresetLast3Months, tomorrow.AddDate(0, -3, 0), tomorrow},
		{PresetLast6Months, tomorrow.AddDate(0, -6, 0), tomorrow},
		{PresetLastYear, tomorrow.AddDate(-1, 0, 0), tomorrow},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			rng, err := ResolveRange(RangeQuery{Preset: tt.preset}, now)
			require.NoError(t, err)

			assert.Equal(t, tt.start, rng.Current.Start)
			assert.Equal(t, tt.end, rng.Current.End)
		})
	}
}

func TestResolveRange_PreviousWindowAdjacency(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	presets := []RangePreset{
		PresetToday, PresetYesterday, PresetLast7Days, PresetLast30Days,
		PresetLast3Months, PresetLast6Months, PresetLastYear,
	}

	for _, preset := range presets {
		t.Run(string(preset), func(t *testing.T) {
			rng, err := ResolveRange(RangeQuery{Preset: preset}, now)
			require.NoError(t, err)

			// No gap, no overlap, identical duration
			assert.Equal(t, rng.Current.Start, rng.Previous.End)
			assert.Equal(t, rng.Current.Duration(), rng.Previous.Duration())
		})
	}
}

func TestResolveRange_Custom(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	rng, err := ResolveRange(RangeQuery{
		Preset: PresetCustom,
		Start:  time.Date(2026, 2, 1, 11, 45, 0, 0, time.UTC),
		End:    time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
	}, now)
	require.NoError(t, err)

	// Inclusive start day, exclusive end at the next-day boundary
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), rng.Current.Start)
	assert.Equal(t, time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), rng.Current.End)
	assert.Equal(t, rng.Current.Start, rng.Previous.End)
	assert.Equal(t, rng.Current.Duration(), rng.Previous.Duration())
}

func TestResolveRange_CustomSameDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 2, 5, 16, 0, 0, 0, time.UTC)

	rng, err := ResolveRange(RangeQuery{Preset: PresetCustom, Start: day, End: day}, now)
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, rng.Current.Duration())
}

func TestResolveRange_InvalidCustomRange(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	_, err := ResolveRange(RangeQuery{
		Preset: PresetCustom,
		Start:  time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}, now)

	require.Error(t, err)
	var rangeErr *InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestResolveRange_UnknownPreset(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	_, err := ResolveRange(RangeQuery{Preset: "fortnight"}, now)
	require.Error(t, err)
}

func TestTrailingWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)

	rng := TrailingWindow(30, now)

	assert.Equal(t, 30*24*time.Hour, rng.Current.Duration())
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), rng.Current.End)
	assert.Equal(t, rng.Current.Start, rng.Previous.End)
	assert.Equal(t, rng.Current.Duration(), rng.Previous.Duration())
}

func TestDateWindow_Contains(t *testing.T) {
	w := DateWindow{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End.Add(-time.Second)))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}
