package engine

import (
	"fmt"
	"time"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// SafeDateHorizon bounds the forward search in FindEarliestSafeDate.
const SafeDateHorizon = 365

// SimulationResult describes what would happen if the proposed trip were
// taken on top of the existing ones.
type SimulationResult struct {
	// WouldViolate is true when at least one day of the proposed trip pushes
	// cumulative presence past the 90-day limit.
	WouldViolate bool
	// Violations lists the violating days, in ascending order.
	Violations []time.Time
	// MaxDaysUsed is the highest usage observed across all checked days.
	MaxDaysUsed int
	// ProposedLength is the inclusive length of the proposed trip.
	ProposedLength int
	// DaysOverLimit is max(0, MaxDaysUsed - 90).
	DaysOverLimit int
}

// ValidateDates rejects a proposed range whose end precedes its start or
// whose inclusive span exceeds 90 days.
func ValidateDates(start, end time.Time) error {
	s, e := domain.Day(start), domain.Day(end)
	if e.Before(s) {
		return fmt.Errorf("%w: end date is before start date", domain.ErrValidation)
	}
	if domain.DaysBetween(s, e)+1 > domain.MaxTripLength {
		return fmt.Errorf("%w: a single trip cannot exceed %d days", domain.ErrValidation, domain.MaxTripLength)
	}
	return nil
}

// Simulate evaluates a proposed trip day by day. For each day d of the
// proposal it recomputes the window ending at d and counts the distinct
// presence days of the existing trips plus the proposal clipped to d. The
// re-windowing per day is essential: the rolling window shifts across a
// multi-day trip, so a violation can occur mid-trip even when the final day
// alone would be safe.
func Simulate(existing []domain.Trip, proposedStart, proposedEnd time.Time) (SimulationResult, error) {
	if err := ValidateDates(proposedStart, proposedEnd); err != nil {
		return SimulationResult{}, err
	}

	start, end := domain.Day(proposedStart), domain.Day(proposedEnd)
	res := SimulationResult{
		ProposedLength: domain.DaysBetween(start, end) + 1,
		Violations:     []time.Time{},
	}

	// One presence set covering every window the loop below will inspect,
	// so each checked day costs a window scan instead of a full recount.
	super := Window{Start: start.AddDate(0, 0, -(WindowDays - 1)), End: end}
	existingSet := presenceSet(existing, super)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		w := ComputeWindow(d)
		used := 0
		for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
			if _, ok := existingSet[day]; ok {
				used++
				continue
			}
			// Days of the proposal itself, clipped to d.
			if !day.Before(start) && !day.After(d) {
				used++
			}
		}
		if used > res.MaxDaysUsed {
			res.MaxDaysUsed = used
		}
		if used > DayLimit {
			res.WouldViolate = true
			res.Violations = append(res.Violations, d)
		}
	}

	if res.MaxDaysUsed > DayLimit {
		res.DaysOverLimit = res.MaxDaysUsed - DayLimit
	}
	return res, nil
}

// FindEarliestSafeDate scans forward from the given day, up to a 365-day
// horizon, for the first start date at which a trip of tripLength days
// produces zero violations. A nil result means the horizon was exhausted —
// an explicit, valid terminal answer, not an error.
func FindEarliestSafeDate(existing []domain.Trip, tripLength int, from time.Time) (*time.Time, error) {
	if tripLength < 1 || tripLength > domain.MaxTripLength {
		return nil, fmt.Errorf("%w: trip length must be between 1 and %d days", domain.ErrValidation, domain.MaxTripLength)
	}

	first := domain.Day(from)
	for i := 0; i < SafeDateHorizon; i++ {
		candidate := first.AddDate(0, 0, i)
		res, err := Simulate(existing, candidate, candidate.AddDate(0, 0, tripLength-1))
		if err != nil {
			return nil, err
		}
		if !res.WouldViolate {
			return &candidate, nil
		}
	}
	return nil, nil
}

// FindMaxSafeLength returns the longest trip starting at startDate that
// produces zero violations, searching lengths 1..90 and stopping at the first
// violation. Returns 0 when even a one-day trip is unsafe.
func FindMaxSafeLength(existing []domain.Trip, startDate time.Time) int {
	start := domain.Day(startDate)
	safe := 0
	for length := 1; length <= domain.MaxTripLength; length++ {
		res, err := Simulate(existing, start, start.AddDate(0, 0, length-1))
		if err != nil || res.WouldViolate {
			break
		}
		safe = length
	}
	return safe
}
