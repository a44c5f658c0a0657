package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/engine"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/premium"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/repo"
)

// ReportService assembles the full compliance report for premium owners.
type ReportService struct {
	trips    repo.TripRepo
	settings repo.SettingsRepo
	gate     premium.Gate
	now      func() time.Time
}

// NewReportService constructs a ReportService. now defaults to time.Now when nil.
func NewReportService(trips repo.TripRepo, settings repo.SettingsRepo, gate premium.Gate, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{trips: trips, settings: settings, gate: gate, now: now}
}

// Build returns the full report: every trip newest-first plus today's summary,
// stamped with the generation time. Returns domain.ErrPermission for free-tier
// owners.
func (s *ReportService) Build(ctx context.Context, ownerID string) (domain.ComplianceReport, error) {
	isPremium, err := s.gate.IsPremium(ctx, ownerID)
	if err != nil {
		return domain.ComplianceReport{}, fmt.Errorf("service.ReportService.Build: %w", err)
	}
	if !isPremium {
		return domain.ComplianceReport{}, fmt.Errorf("%w: the compliance report requires a premium membership", domain.ErrPermission)
	}

	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return domain.ComplianceReport{}, fmt.Errorf("service.ReportService.Build: %w", err)
	}

	settings, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.ComplianceReport{}, fmt.Errorf("service.ReportService.Build: %w", err)
		}
		settings = domain.DefaultSettings(ownerID)
	}

	thresholds := domain.StatusThresholds{Yellow: settings.YellowThreshold, Red: settings.RedThreshold}
	now := s.now()
	return engine.BuildReport(trips, now, thresholds, now), nil
}
