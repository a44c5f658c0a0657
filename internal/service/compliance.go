package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/cache"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/engine"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/metrics"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/repo"
)

// ComplianceService answers "where do I stand?" for one owner: it loads the
// trip snapshot and the owner's thresholds, then delegates the window math to
// the engine.
type ComplianceService struct {
	trips    repo.TripRepo
	settings repo.SettingsRepo
	summary  *cache.SummaryCache
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewComplianceService constructs a ComplianceService. summary and m may be
// nil; now defaults to time.Now when nil.
func NewComplianceService(trips repo.TripRepo, settings repo.SettingsRepo, summary *cache.SummaryCache, m *metrics.Metrics, now func() time.Time) *ComplianceService {
	if now == nil {
		now = time.Now
	}
	return &ComplianceService{trips: trips, settings: settings, summary: summary, metrics: m, now: now}
}

// Summary computes the compliance summary for ownerID at the given reference
// date. A zero ref means "today". Only today's summary is cached: any other
// reference date is computed fresh.
func (s *ComplianceService) Summary(ctx context.Context, ownerID string, ref time.Time) (domain.ComplianceSummary, error) {
	today := domain.Day(s.now())
	if ref.IsZero() {
		ref = today
	}
	ref = domain.Day(ref)

	cacheable := ref.Equal(today)
	if cacheable {
		if cached, ok := s.summary.Get(ctx, ownerID); ok && cached.ReferenceDate.Equal(ref) {
			s.metrics.SummaryCacheHit()
			return cached, nil
		}
	}

	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return domain.ComplianceSummary{}, fmt.Errorf("service.ComplianceService.Summary: %w", err)
	}

	thresholds, err := s.thresholds(ctx, ownerID)
	if err != nil {
		return domain.ComplianceSummary{}, fmt.Errorf("service.ComplianceService.Summary: %w", err)
	}

	result := engine.Summarize(trips, ref, thresholds)
	s.metrics.SummaryComputed()
	if cacheable {
		s.summary.Set(ctx, ownerID, result)
	}
	return result, nil
}

// thresholds returns the owner's configured status thresholds, falling back
// to the defaults when no settings row exists.
func (s *ComplianceService) thresholds(ctx context.Context, ownerID string) (domain.StatusThresholds, error) {
	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			settings = domain.DefaultSettings(ownerID)
		} else {
			return domain.StatusThresholds{}, err
		}
	}
	return domain.StatusThresholds{Yellow: settings.YellowThreshold, Red: settings.RedThreshold}, nil
}
