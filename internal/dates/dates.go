// Package dates holds the calendar arithmetic behind subscription periods.
// Dates are calendar dates (midnight UTC), not instants.
package dates

import "time"

const (
	// PermanentThresholdDays is the legacy sentinel: plans with duration_days
	// of 0 or above this value never expire.
	PermanentThresholdDays = 36500

	// MaxFixedDurationDays caps the duration of non-permanent plans.
	MaxFixedDurationDays = 3650
)

// IsPermanent reports whether a plan duration encodes a no-expiry plan.
// Both legacy encodings (0 and >36500) are honored at this boundary.
func IsPermanent(durationDays int) bool {
	return durationDays == 0 || durationDays > PermanentThresholdDays
}

// Normalize truncates a timestamp to its calendar date in UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return Normalize(time.Now())
}

// ProjectEndDate returns start + durationDays as a calendar date, or nil for
// permanent plans.
func ProjectEndDate(start time.Time, durationDays int) *time.Time {
	if IsPermanent(durationDays) {
		return nil
	}
	end := Normalize(start).AddDate(0, 0, durationDays)
	return &end
}

// DaysRemaining returns the whole days between today and end. Zero means the
// subscription expires today; negative means it already expired. The second
// return value is false for permanent subscriptions (nil end date).
func DaysRemaining(end *time.Time, today time.Time) (int, bool) {
	if end == nil {
		return 0, false
	}
	diff := Normalize(*end).Sub(Normalize(today))
	return int(diff.Hours() / 24), true
}

// NextRenewalStart returns the day after the current end date when that date
// is still in the future, otherwise today. Early renewals keep their unused
// days; late renewals start immediately with no retroactive gap.
func NextRenewalStart(currentEnd *time.Time, today time.Time) time.Time {
	today = Normalize(today)
	if currentEnd != nil && Normalize(*currentEnd).After(today) {
		return Normalize(*currentEnd).AddDate(0, 0, 1)
	}
	return today
}
