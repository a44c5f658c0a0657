package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// Date-only fields use openapi_types.Date so they serialize as "2006-01-02"
// rather than full RFC 3339 timestamps; timestamps keep time.Time.

type tripRequest struct {
	Country   string             `json:"country"`
	Category  string             `json:"category"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     string             `json:"notes,omitempty"`
}

type tripResponse struct {
	ID        uuid.UUID          `json:"id"`
	Country   string             `json:"country"`
	Category  string             `json:"category"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type tripListResponse struct {
	Trips []tripResponse `json:"trips"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type thresholdsPayload struct {
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

type summaryResponse struct {
	ReferenceDate  openapi_types.Date  `json:"reference_date"`
	DaysUsed       int                 `json:"days_used"`
	DaysRemaining  int                 `json:"days_remaining"`
	WindowStart    openapi_types.Date  `json:"window_start"`
	WindowEnd      openapi_types.Date  `json:"window_end"`
	Status         string              `json:"status"`
	NextExpiration *openapi_types.Date `json:"next_expiration,omitempty"`
	Thresholds     thresholdsPayload   `json:"status_thresholds"`
}

type simulateRequest struct {
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

type simulationResponse struct {
	WouldViolate     bool                 `json:"would_violate"`
	Violations       []openapi_types.Date `json:"violations"`
	MaxDaysUsed      int                  `json:"max_days_used"`
	ProposedLength   int                  `json:"proposed_length"`
	DaysOverLimit    int                  `json:"days_over_limit"`
	EarliestSafeDate *openapi_types.Date  `json:"earliest_safe_date,omitempty"`
	MaxSafeLength    int                  `json:"max_safe_length"`
}

type settingsRequest struct {
	YellowThreshold       int    `json:"yellow_threshold"`
	RedThreshold          int    `json:"red_threshold"`
	EmailAlerts           bool   `json:"email_alerts"`
	UpcomingTripReminders bool   `json:"upcoming_trip_reminders"`
	AlertEmail            string `json:"alert_email,omitempty"`
}

type settingsResponse struct {
	YellowThreshold       int       `json:"yellow_threshold"`
	RedThreshold          int       `json:"red_threshold"`
	EmailAlerts           bool      `json:"email_alerts"`
	UpcomingTripReminders bool      `json:"upcoming_trip_reminders"`
	AlertEmail            string    `json:"alert_email,omitempty"`
	Premium               bool      `json:"premium"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type alertTestResponse struct {
	ThresholdsMet bool `json:"thresholds_met"`
	Sent          bool `json:"sent"`
}

type reportResponse struct {
	Trips       []tripResponse  `json:"trips"`
	Summary     summaryResponse `json:"summary"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// ---- mapping helpers -------------------------------------------------------

func wireDate(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

func wireDatePtr(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	d := wireDate(*t)
	return &d
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:        t.ID,
		Country:   t.Country,
		Category:  string(t.Category),
		StartDate: wireDate(t.StartDate),
		EndDate:   wireDate(t.EndDate),
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTripResponses(trips []domain.Trip) []tripResponse {
	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = toTripResponse(t)
	}
	return out
}

func toSummaryResponse(s domain.ComplianceSummary) summaryResponse {
	return summaryResponse{
		ReferenceDate:  wireDate(s.ReferenceDate),
		DaysUsed:       s.DaysUsed,
		DaysRemaining:  s.DaysRemaining,
		WindowStart:    wireDate(s.WindowStart),
		WindowEnd:      wireDate(s.WindowEnd),
		Status:         string(s.Status),
		NextExpiration: wireDatePtr(s.NextExpiration),
		Thresholds:     thresholdsPayload{Yellow: s.Thresholds.Yellow, Red: s.Thresholds.Red},
	}
}

func toSimulationResponse(o domain.SimulationOutcome) simulationResponse {
	violations := make([]openapi_types.Date, len(o.Violations))
	for i, v := range o.Violations {
		violations[i] = wireDate(v)
	}
	return simulationResponse{
		WouldViolate:     o.WouldViolate,
		Violations:       violations,
		MaxDaysUsed:      o.MaxDaysUsed,
		ProposedLength:   o.ProposedLength,
		DaysOverLimit:    o.DaysOverLimit,
		EarliestSafeDate: wireDatePtr(o.EarliestSafeDate),
		MaxSafeLength:    o.MaxSafeLength,
	}
}

func toSettingsResponse(s domain.ComplianceSettings) settingsResponse {
	return settingsResponse{
		YellowThreshold:       s.YellowThreshold,
		RedThreshold:          s.RedThreshold,
		EmailAlerts:           s.EmailAlerts,
		UpcomingTripReminders: s.UpcomingTripReminders,
		AlertEmail:            s.AlertEmail,
		Premium:               s.Premium,
		UpdatedAt:             s.UpdatedAt,
	}
}
