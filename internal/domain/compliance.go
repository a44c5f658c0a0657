package domain

import "time"

// ComplianceStatus is the categorical severity shown to the user, derived
// from days used versus their configurable yellow/red thresholds.
type ComplianceStatus string

const (
	StatusSafe     ComplianceStatus = "safe"
	StatusWarning  ComplianceStatus = "warning"
	StatusDanger   ComplianceStatus = "danger"
	StatusCritical ComplianceStatus = "critical"
)

// StatusThresholds echoes the thresholds a summary was computed against so
// clients can render the scale without a second settings fetch.
type StatusThresholds struct {
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

// ComplianceSummary is the read-only answer to "where do I stand today?".
// Window bounds are inclusive UTC calendar dates. NextExpiration is nil when
// no days are used in the window.
type ComplianceSummary struct {
	ReferenceDate  time.Time        `json:"reference_date"`
	DaysUsed       int              `json:"days_used"`
	DaysRemaining  int              `json:"days_remaining"`
	WindowStart    time.Time        `json:"window_start"`
	WindowEnd      time.Time        `json:"window_end"`
	Status         ComplianceStatus `json:"status"`
	NextExpiration *time.Time       `json:"next_expiration,omitempty"`
	Thresholds     StatusThresholds `json:"status_thresholds"`
}

// ComplianceReport is the premium full report: every trip newest-first plus
// the summary, stamped with its generation time. The engine hands this to an
// external rendering/export collaborator; it has no side effects itself.
type ComplianceReport struct {
	Trips       []Trip            `json:"trips"`
	Summary     ComplianceSummary `json:"summary"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// SimulationOutcome is the result of evaluating a hypothetical trip against
// the user's existing trips, plus the two safe-travel searches. A nil
// EarliestSafeDate means the 365-day horizon was exhausted — a valid terminal
// answer, not an error.
type SimulationOutcome struct {
	WouldViolate     bool        `json:"would_violate"`
	Violations       []time.Time `json:"violations"`
	MaxDaysUsed      int         `json:"max_days_used"`
	ProposedLength   int         `json:"proposed_length"`
	DaysOverLimit    int         `json:"days_over_limit"`
	EarliestSafeDate *time.Time  `json:"earliest_safe_date,omitempty"`
	MaxSafeLength    int         `json:"max_safe_length"`
}
