package domain

import "time"

// AlertLevel is the severity ladder used by the daily email alert cycle.
// Levels are ordered: none < warning < danger < urgent.
type AlertLevel string

const (
	AlertNone    AlertLevel = "none"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
	AlertUrgent  AlertLevel = "urgent"
)

// Fixed alert thresholds (days used in the current window). These are
// deliberately independent of the user-configurable yellow/red thresholds
// that drive the UI status — do not unify the two sets.
const (
	alertWarningAt = 60
	alertDangerAt  = 80
	alertUrgentAt  = 85
)

// AlertLevelFor maps a days-used count onto the fixed alert ladder.
func AlertLevelFor(daysUsed int) AlertLevel {
	switch {
	case daysUsed >= alertUrgentAt:
		return AlertUrgent
	case daysUsed >= alertDangerAt:
		return AlertDanger
	case daysUsed >= alertWarningAt:
		return AlertWarning
	default:
		return AlertNone
	}
}

// rank orders levels so escalation can be compared. Unknown levels rank as none.
func (l AlertLevel) rank() int {
	switch l {
	case AlertWarning:
		return 1
	case AlertDanger:
		return 2
	case AlertUrgent:
		return 3
	default:
		return 0
	}
}

// Exceeds reports whether l is strictly more severe than other.
func (l AlertLevel) Exceeds(other AlertLevel) bool {
	return l.rank() > other.rank()
}

// AlertTestResult is the outcome of a forced, on-demand alert evaluation:
// whether usage reached the fixed ladder, and whether a notification actually
// went out (the cooldown can suppress it even when thresholds are met).
type AlertTestResult struct {
	ThresholdsMet bool `json:"thresholds_met"`
	Sent          bool `json:"sent"`
}

// AlertState is the persisted per-user alert history used for deduplication.
// Created on the first alert, mutated by the scheduler, never deleted by the
// engine itself.
type AlertState struct {
	OwnerID    string     `json:"owner_id"`
	LastLevel  AlertLevel `json:"last_level"`
	LastSentAt *time.Time `json:"last_sent_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AlertCandidate is one user eligible for the daily alert cycle: at least one
// trip recorded and email alerts enabled.
type AlertCandidate struct {
	OwnerID    string
	AlertEmail string // may be empty; the dispatcher decides how to resolve it
}
