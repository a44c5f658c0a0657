package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

func TestDay_TruncatesToUTCMidnight(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	late := time.Date(2024, 7, 25, 0, 30, 0, 0, paris) // 2024-07-24 23:30 UTC

	got := domain.Day(late)

	assert.Equal(t, time.Date(2024, 7, 24, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, domain.DaysBetween(a, a))
	assert.Equal(t, 19, domain.DaysBetween(a, a.AddDate(0, 0, 19)))
	assert.Equal(t, -1, domain.DaysBetween(a, a.AddDate(0, 0, -1)))
}

func TestTripLength(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	oneDay := domain.Trip{StartDate: start, EndDate: start}
	assert.Equal(t, 1, oneDay.Length())

	ninety := domain.Trip{StartDate: start, EndDate: start.AddDate(0, 0, 89)}
	assert.Equal(t, 90, ninety.Length())
}

func TestIsSchengenCountry(t *testing.T) {
	assert.True(t, domain.IsSchengenCountry("FR"))
	assert.True(t, domain.IsSchengenCountry("fr")) // case-insensitive
	assert.True(t, domain.IsSchengenCountry("CH"))
	assert.False(t, domain.IsSchengenCountry("IE")) // EU but not Schengen
	assert.False(t, domain.IsSchengenCountry("GB"))
	assert.False(t, domain.IsSchengenCountry(""))
}

func TestAlertLevelFor_FixedLadder(t *testing.T) {
	assert.Equal(t, domain.AlertNone, domain.AlertLevelFor(0))
	assert.Equal(t, domain.AlertNone, domain.AlertLevelFor(59))
	assert.Equal(t, domain.AlertWarning, domain.AlertLevelFor(60))
	assert.Equal(t, domain.AlertWarning, domain.AlertLevelFor(79))
	assert.Equal(t, domain.AlertDanger, domain.AlertLevelFor(80))
	assert.Equal(t, domain.AlertDanger, domain.AlertLevelFor(84))
	assert.Equal(t, domain.AlertUrgent, domain.AlertLevelFor(85))
	assert.Equal(t, domain.AlertUrgent, domain.AlertLevelFor(100))
}

func TestAlertLevel_Exceeds(t *testing.T) {
	assert.True(t, domain.AlertDanger.Exceeds(domain.AlertWarning))
	assert.True(t, domain.AlertUrgent.Exceeds(domain.AlertNone))
	assert.False(t, domain.AlertWarning.Exceeds(domain.AlertWarning))
	assert.False(t, domain.AlertNone.Exceeds(domain.AlertUrgent))
}

func TestComplianceSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		yellow  int
		red     int
		wantErr bool
	}{
		{"defaults are valid", 60, 80, false},
		{"tight but ordered", 89, 90, false},
		{"yellow equals red", 70, 70, true},
		{"yellow above red", 80, 60, true},
		{"yellow zero", 0, 80, true},
		{"yellow at ninety", 90, 91, true},
		{"red above ninety", 60, 91, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.ComplianceSettings{YellowThreshold: tt.yellow, RedThreshold: tt.red}
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTripCategoryIsValid(t *testing.T) {
	assert.True(t, domain.CategoryTourism.IsValid())
	assert.True(t, domain.CategoryTransit.IsValid())
	assert.False(t, domain.TripCategory("vacation").IsValid())
	assert.False(t, domain.TripCategory("").IsValid())
}
