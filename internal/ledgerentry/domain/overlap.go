package domain

import "time"

// Overlaps reports whether an entry's time span intersects the billing period.
// Open-ended entries (nil end date) count as ongoing and match any period that
// starts before or at the entry's start. Mirrors the SQL predicate used by the
// unbilled-entry matcher so the semantics are testable without a database.
func Overlaps(entryStart time.Time, entryEnd *time.Time, periodStart, periodEnd time.Time) bool {
	if entryStart.After(periodEnd) {
		return false
	}
	if entryEnd == nil {
		return true
	}
	return !entryEnd.Before(periodStart)
}
