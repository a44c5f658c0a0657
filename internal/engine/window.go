// Package engine implements the rolling-window compliance calculations for
// the Schengen 90/180 rule. Every function here is a pure computation over
// the trip snapshot it is handed: no hidden state, no I/O, nothing to cancel.
// Callers (the service layer) own loading trips and persisting results.
package engine

import (
	"time"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// WindowDays is the length of the rolling window in calendar days, inclusive
// of both bounds.
const WindowDays = 180

// DayLimit is the maximum number of days that may be used inside any window.
const DayLimit = 90

// Window is a rolling 180-day interval ending at the reference date.
// Both bounds are inclusive UTC calendar dates. Windows are derived on
// demand and never persisted.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day (a UTC midnight) falls inside the window.
func (w Window) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// ComputeWindow returns the 180-day window ending at ref:
// [ref-179d, ref], both inclusive.
func ComputeWindow(ref time.Time) Window {
	end := domain.Day(ref)
	return Window{Start: end.AddDate(0, 0, -(WindowDays - 1)), End: end}
}

// DaysUsed counts the distinct calendar dates of presence within the window.
// Each trip is clipped to the window bounds and its days inserted into a set,
// so overlapping trips never double-count and the result is invariant under
// reordering of the trip list.
func DaysUsed(trips []domain.Trip, w Window) int {
	return len(presenceSet(trips, w))
}

// FindNextExpiration returns the date on which usage first begins to
// decrease: the earliest used day in the window plus 180 days, i.e. the day
// that day rolls out of the window. Returns nil when no days are used.
func FindNextExpiration(trips []domain.Trip, w Window) *time.Time {
	set := presenceSet(trips, w)
	if len(set) == 0 {
		return nil
	}
	var earliest time.Time
	for day := range set {
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}
	exp := earliest.AddDate(0, 0, WindowDays)
	return &exp
}

// presenceSet builds the set of distinct presence days inside the window.
func presenceSet(trips []domain.Trip, w Window) map[time.Time]struct{} {
	set := make(map[time.Time]struct{})
	for _, t := range trips {
		start, end, ok := clip(domain.Day(t.StartDate), domain.Day(t.EndDate), w)
		if !ok {
			continue
		}
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			set[day] = struct{}{}
		}
	}
	return set
}

// clip intersects the inclusive range [start, end] with the window.
// ok is false when the intersection is empty.
func clip(start, end time.Time, w Window) (time.Time, time.Time, bool) {
	if start.Before(w.Start) {
		start = w.Start
	}
	if end.After(w.End) {
		end = w.End
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
