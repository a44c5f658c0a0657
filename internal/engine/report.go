package engine

import (
	"sort"
	"time"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// Summarize assembles the read-only compliance summary for a reference date.
// Pure function of its inputs; the thresholds come from the caller so the
// engine stays settings-agnostic.
func Summarize(trips []domain.Trip, ref time.Time, thresholds domain.StatusThresholds) domain.ComplianceSummary {
	w := ComputeWindow(ref)
	used := DaysUsed(trips, w)
	return domain.ComplianceSummary{
		ReferenceDate:  w.End,
		DaysUsed:       used,
		DaysRemaining:  Remaining(used),
		WindowStart:    w.Start,
		WindowEnd:      w.End,
		Status:         Status(used, thresholds.Yellow, thresholds.Red),
		NextExpiration: FindNextExpiration(trips, w),
		Thresholds:     thresholds,
	}
}

// BuildReport assembles the full report: all trips sorted newest-first plus
// the summary for the reference date. generatedAt is injected so callers (and
// tests) control the clock; the output is handed to an external
// rendering/export collaborator untouched.
func BuildReport(trips []domain.Trip, ref time.Time, thresholds domain.StatusThresholds, generatedAt time.Time) domain.ComplianceReport {
	sorted := make([]domain.Trip, len(trips))
	copy(sorted, trips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})

	return domain.ComplianceReport{
		Trips:       sorted,
		Summary:     Summarize(trips, ref, thresholds),
		GeneratedAt: generatedAt,
	}
}
