package domain

import "time"

// Day truncates t to a UTC calendar date (midnight UTC). All engine inputs
// pass through this so that wall-clock timestamps and dates parsed from JSON
// compare equal when they name the same day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b. Both arguments
// must already be UTC midnights (see Day); with that invariant the result is
// exact — there is no DST in UTC.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// SameDay reports whether a and b name the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
