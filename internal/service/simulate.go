package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/engine"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/metrics"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/premium"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/repo"
)

// SimulationService evaluates hypothetical trips for premium owners. The
// engine does the math; this layer does the gate check, loads the snapshot,
// and runs the two safe-travel searches.
type SimulationService struct {
	trips   repo.TripRepo
	gate    premium.Gate
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSimulationService constructs a SimulationService. m may be nil; now
// defaults to time.Now when nil.
func NewSimulationService(trips repo.TripRepo, gate premium.Gate, m *metrics.Metrics, now func() time.Time) *SimulationService {
	if now == nil {
		now = time.Now
	}
	return &SimulationService{trips: trips, gate: gate, metrics: m, now: now}
}

// Simulate evaluates a proposed trip against the owner's recorded trips.
// Returns domain.ErrPermission for free-tier owners and domain.ErrValidation
// for an invalid date range. When the proposal is safe the earliest safe date
// is the proposal start itself; when it violates, the forward search scans
// from today — an earlier departure may be safe even when the proposed one is
// not — and a nil EarliestSafeDate in the outcome means the 365-day horizon
// was exhausted.
func (s *SimulationService) Simulate(ctx context.Context, ownerID string, start, end time.Time) (domain.SimulationOutcome, error) {
	isPremium, err := s.gate.IsPremium(ctx, ownerID)
	if err != nil {
		return domain.SimulationOutcome{}, fmt.Errorf("service.SimulationService.Simulate: %w", err)
	}
	if !isPremium {
		return domain.SimulationOutcome{}, fmt.Errorf("%w: trip simulation requires a premium membership", domain.ErrPermission)
	}

	existing, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return domain.SimulationOutcome{}, fmt.Errorf("service.SimulationService.Simulate: %w", err)
	}

	res, err := engine.Simulate(existing, start, end)
	if err != nil {
		return domain.SimulationOutcome{}, err
	}

	outcome := domain.SimulationOutcome{
		WouldViolate:   res.WouldViolate,
		Violations:     res.Violations,
		MaxDaysUsed:    res.MaxDaysUsed,
		ProposedLength: res.ProposedLength,
		DaysOverLimit:  res.DaysOverLimit,
		MaxSafeLength:  engine.FindMaxSafeLength(existing, start),
	}

	if res.WouldViolate {
		earliest, err := engine.FindEarliestSafeDate(existing, res.ProposedLength, s.now())
		if err != nil {
			return domain.SimulationOutcome{}, fmt.Errorf("service.SimulationService.Simulate: %w", err)
		}
		outcome.EarliestSafeDate = earliest
	} else {
		day := domain.Day(start)
		outcome.EarliestSafeDate = &day
	}

	s.metrics.SimulationRun()
	return outcome, nil
}
