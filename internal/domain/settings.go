package domain

import (
	"fmt"
	"time"
)

// Default status thresholds applied when a user has never saved settings.
const (
	DefaultYellowThreshold = 60
	DefaultRedThreshold    = 80
)

// ComplianceSettings holds one user's configurable compliance preferences.
// YellowThreshold and RedThreshold drive the UI status colours and are
// independent of the fixed email-alert ladder (see AlertLevelFor) — the two
// threshold sets are deliberately not unified.
type ComplianceSettings struct {
	OwnerID               string    `json:"owner_id"`
	YellowThreshold       int       `json:"yellow_threshold"`
	RedThreshold          int       `json:"red_threshold"`
	EmailAlerts           bool      `json:"email_alerts"`
	UpcomingTripReminders bool      `json:"upcoming_trip_reminders"`
	AlertEmail            string    `json:"alert_email,omitempty"`
	Premium               bool      `json:"premium"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings applied to an owner who has never
// saved any: thresholds 60/80, email alerts on, free tier.
func DefaultSettings(ownerID string) ComplianceSettings {
	return ComplianceSettings{
		OwnerID:               ownerID,
		YellowThreshold:       DefaultYellowThreshold,
		RedThreshold:          DefaultRedThreshold,
		EmailAlerts:           true,
		UpcomingTripReminders: true,
	}
}

// Validate enforces the threshold invariants: yellow in [1,89], red in
// [yellow+1, 90]. Any yellow >= red pair is rejected.
func (s ComplianceSettings) Validate() error {
	if s.YellowThreshold < 1 || s.YellowThreshold > 89 {
		return fmt.Errorf("%w: yellow threshold must be between 1 and 89", ErrValidation)
	}
	if s.RedThreshold > 90 {
		return fmt.Errorf("%w: red threshold must be at most 90", ErrValidation)
	}
	if s.YellowThreshold >= s.RedThreshold {
		return fmt.Errorf("%w: yellow threshold must be below red threshold", ErrValidation)
	}
	return nil
}
