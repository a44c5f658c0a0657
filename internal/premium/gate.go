// Package premium provides the membership-gate capability. The compliance
// engine itself is gate-agnostic; services consult the gate before exposing
// premium features (simulation, full report) and before the free-tier trip
// limit.
package premium

import (
	"context"
	"errors"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// FreeTierTripLimit is the number of trips a free-tier user may record.
const FreeTierTripLimit = 3

// Gate answers whether a user holds a premium membership. Injected rather
// than looked up from a global registry so services stay pure and testable.
type Gate interface {
	IsPremium(ctx context.Context, ownerID string) (bool, error)
}

// settingsReader is the slice of the settings repo the gate needs.
type settingsReader interface {
	Get(ctx context.Context, ownerID string) (domain.ComplianceSettings, error)
}

// SettingsGate derives membership from the premium flag on the owner's
// compliance settings row. The flag is written by the external billing
// system; this gate only reads it.
type SettingsGate struct {
	settings settingsReader
}

// NewSettingsGate returns a Gate backed by the settings store.
func NewSettingsGate(settings settingsReader) *SettingsGate {
	return &SettingsGate{settings: settings}
}

// IsPremium reports the owner's tier. An owner with no settings row is free tier.
func (g *SettingsGate) IsPremium(ctx context.Context, ownerID string) (bool, error) {
	s, err := g.settings.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.Premium, nil
}

// StaticGate answers from a fixed map; used in tests and local development.
type StaticGate map[string]bool

// IsPremium reports the configured tier for ownerID (false when absent).
func (g StaticGate) IsPremium(_ context.Context, ownerID string) (bool, error) {
	return g[ownerID], nil
}
