package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/cache"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/repo"
)

// SettingsService manages per-owner compliance settings.
type SettingsService struct {
	settings repo.SettingsRepo
	summary  *cache.SummaryCache
}

// NewSettingsService constructs a SettingsService. summary may be nil.
func NewSettingsService(settings repo.SettingsRepo, summary *cache.SummaryCache) *SettingsService {
	return &SettingsService{settings: settings, summary: summary}
}

// Get returns the owner's settings, or the defaults when none were ever saved.
// Never returns domain.ErrNotFound: every owner has effective settings.
func (s *SettingsService) Get(ctx context.Context, ownerID string) (domain.ComplianceSettings, error) {
	result, err := s.settings.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultSettings(ownerID), nil
		}
		return domain.ComplianceSettings{}, fmt.Errorf("service.SettingsService.Get: %w", err)
	}
	return result, nil
}

// Update validates and persists the owner's settings. The premium flag is
// owned by the billing system, so the stored value is preserved regardless of
// what the caller sends. Returns domain.ErrValidation for threshold rules
// (yellow in [1,89], red at most 90, yellow strictly below red).
func (s *SettingsService) Update(ctx context.Context, settings domain.ComplianceSettings) (domain.ComplianceSettings, error) {
	if err := settings.Validate(); err != nil {
		return domain.ComplianceSettings{}, err
	}

	current, err := s.Get(ctx, settings.OwnerID)
	if err != nil {
		return domain.ComplianceSettings{}, fmt.Errorf("service.SettingsService.Update: %w", err)
	}
	settings.Premium = current.Premium

	result, err := s.settings.Upsert(ctx, settings)
	if err != nil {
		return domain.ComplianceSettings{}, fmt.Errorf("service.SettingsService.Update: %w", err)
	}

	// Thresholds feed the summary's status, so the cached copy is stale now.
	s.summary.Invalidate(ctx, settings.OwnerID)
	return result, nil
}
