package engine

import "github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"

// Status maps a days-used count onto the user-facing severity scale using the
// caller's configurable thresholds. Critical always means the hard 90-day
// limit is reached, regardless of how the thresholds are set.
func Status(daysUsed, yellow, red int) domain.ComplianceStatus {
	switch {
	case daysUsed >= DayLimit:
		return domain.StatusCritical
	case daysUsed >= red:
		return domain.StatusDanger
	case daysUsed >= yellow:
		return domain.StatusWarning
	default:
		return domain.StatusSafe
	}
}

// Remaining returns how many more days may be used before hitting the 90-day
// limit, floored at zero.
func Remaining(daysUsed int) int {
	if daysUsed >= DayLimit {
		return 0
	}
	return DayLimit - daysUsed
}
