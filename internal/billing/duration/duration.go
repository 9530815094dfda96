// Package duration computes billable time spans for duration-priced items.
// Both calculators normalize their inputs to midnight UTC before differencing,
// so results are independent of time-of-day.
package duration

import "time"

// Nights returns the number of nights between check-in and check-out
// (calendar-day boundaries crossed). A same-day or inverted span is invalid
// and reported as ok=false: a stay must cross at least one midnight.
func Nights(start, end time.Time) (int, bool) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 0, false
	}
	days := daysBetween(start, end)
	if days <= 0 {
		return 0, false
	}
	return days, true
}

// DaysInclusive returns the inclusive day count of a span: start == end counts
// as one day. An inverted span is invalid and reported as ok=false.
func DaysInclusive(start, end time.Time) (int, bool) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0, false
	}
	return daysBetween(start, end) + 1, true
}

func daysBetween(start, end time.Time) int {
	return int(midnight(end).Sub(midnight(start)).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
