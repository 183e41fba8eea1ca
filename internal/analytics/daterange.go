package analytics

import (
	"fmt"
	"time"
)

// RangePreset names a supported date-range preset.
type RangePreset string

const (
	PresetToday       RangePreset = "today"
	PresetYesterday   RangePreset = "yesterday"
	PresetLast7Days   RangePreset = "last7days"
	PresetLast30Days  RangePreset = "last30days"
	PresetLast3Months RangePreset = "last3months"
	PresetLast6Months RangePreset = "last6months"
	PresetLastYear    RangePreset = "lastyear"
	PresetCustom      RangePreset = "custom"
)

// RangeQuery is the caller's date-range selection. Start and End are only
// read when Preset is custom; they name calendar days (time-of-day ignored).
type RangeQuery struct {
	Preset RangePreset
	Start  time.Time
	End    time.Time
}

// ResolveRange maps a preset or custom selection onto a concrete half-open
// window plus the immediately preceding window of identical duration.
//
// All windows are inclusive of the start day and exclusive at 00:00:00 of
// the day after the last day, uniformly across presets. "today" therefore
// covers the full current calendar day regardless of the time of the call.
func ResolveRange(q RangeQuery, now time.Time) (ResolvedRange, error) {
	today := dayStart(now)
	tomorrow := today.AddDate(0, 0, 1)

	var current DateWindow

	switch q.Preset {
	case PresetToday:
		current = DateWindow{Start: today, End: tomorrow}
	case PresetYesterday:
		current = DateWindow{Start: today.AddDate(0, 0, -1), End: today}
	case PresetLast7Days:
		current = DateWindow{Start: tomorrow.AddDate(0, 0, -7), End: tomorrow}
	case PresetLast30Days:
		current = DateWindow{Start: tomorrow.AddDate(0, 0, -30), End: tomorrow}
	case PresetLast3Months:
		current = DateWindow{Start: tomorrow.AddDate(0, -3, 0), End: tomorrow}
	case PresetLast6Months:
		current = DateWindow{Start: tomorrow.AddDate(0, -6, 0), End: tomorrow}
	case PresetLastYear:
		current = DateWindow{Start: tomorrow.AddDate(-1, 0, 0), End: tomorrow}
	case PresetCustom:
		start := dayStart(q.Start)
		end := dayStart(q.End)
		if start.After(end) {
			return ResolvedRange{}, &InvalidRangeError{Start: q.Start, End: q.End}
		}
		current = DateWindow{Start: start, End: end.AddDate(0, 0, 1)}
	default:
		return ResolvedRange{}, fmt.Errorf("unknown date range preset %q", q.Preset)
	}

	return ResolvedRange{
		Current:  current,
		Previous: previousWindow(current),
	}, nil
}

// TrailingWindow resolves the fixed trailing window used by the dashboard.
func TrailingWindow(days int, now time.Time) ResolvedRange {
	tomorrow := dayStart(now).AddDate(0, 0, 1)
	current := DateWindow{Start: tomorrow.AddDate(0, 0, -days), End: tomorrow}
	return ResolvedRange{Current: current, Previous: previousWindow(current)}
}

// previousWindow returns the window of identical duration ending exactly at
// w.Start.
func previousWindow(w DateWindow) DateWindow {
	return DateWindow{Start: w.Start.Add(-w.Duration()), End: w.Start}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
