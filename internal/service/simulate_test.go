package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/premium"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/service"
)

func newSimulationService(trips []domain.Trip, gate premium.Gate, now func() time.Time) *service.SimulationService {
	return service.NewSimulationService(
		&mockTripRepo{
			listByOwner: func(_ context.Context, _ string) ([]domain.Trip, error) {
				return trips, nil
			},
		},
		gate,
		nil,
		now,
	)
}

func TestSimulationService_FreeTierDenied(t *testing.T) {
	svc := newSimulationService(nil, premium.StaticGate{}, nil)

	start := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Simulate(context.Background(), "user-1", start, start.AddDate(0, 0, 9))

	assert.ErrorIs(t, err, domain.ErrPermission)
}

func TestSimulationService_SafeProposal(t *testing.T) {
	svc := newSimulationService(nil, premium.StaticGate{"user-1": true}, nil)

	start := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.Simulate(context.Background(), "user-1", start, start.AddDate(0, 0, 9))

	require.NoError(t, err)
	assert.False(t, got.WouldViolate)
	assert.Equal(t, 10, got.ProposedLength)
	assert.Equal(t, 10, got.MaxDaysUsed)
	assert.Equal(t, 0, got.DaysOverLimit)
	assert.Empty(t, got.Violations)
	require.NotNil(t, got.EarliestSafeDate)
	assert.True(t, got.EarliestSafeDate.Equal(start))
	assert.Equal(t, 90, got.MaxSafeLength)
}

func TestSimulationService_ViolatingProposal(t *testing.T) {
	// 85 days already used right up to the day before the proposal.
	start := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	existing := []domain.Trip{{
		OwnerID:   "user-1",
		StartDate: start.AddDate(0, 0, -85),
		EndDate:   start.AddDate(0, 0, -1),
	}}
	svc := newSimulationService(existing, premium.StaticGate{"user-1": true}, func() time.Time { return start })

	got, err := svc.Simulate(context.Background(), "user-1", start, start.AddDate(0, 0, 9))

	require.NoError(t, err)
	assert.True(t, got.WouldViolate)
	assert.Equal(t, 95, got.MaxDaysUsed)
	assert.Equal(t, 5, got.DaysOverLimit)
	assert.Len(t, got.Violations, 5)
	assert.Equal(t, 5, got.MaxSafeLength)
	require.NotNil(t, got.EarliestSafeDate)
	assert.True(t, got.EarliestSafeDate.After(start))
}

func TestSimulationService_EarliestSafeDate_SearchesFromToday(t *testing.T) {
	// A 90-day stay later in the year makes the proposal violate, but a trip
	// of the same length is already safe today. The forward search must begin
	// at today, not at the proposed start, or every pre-proposal candidate is
	// skipped.
	today := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	existing := []domain.Trip{{
		OwnerID:   "user-1",
		StartDate: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC),
	}}
	svc := newSimulationService(existing, premium.StaticGate{"user-1": true}, func() time.Time { return today })

	start := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	got, err := svc.Simulate(context.Background(), "user-1", start, start.AddDate(0, 0, 9))

	require.NoError(t, err)
	assert.True(t, got.WouldViolate)
	require.NotNil(t, got.EarliestSafeDate)
	assert.True(t, got.EarliestSafeDate.Equal(domain.Day(today)))
}

func TestSimulationService_InvalidRange(t *testing.T) {
	svc := newSimulationService(nil, premium.StaticGate{"user-1": true}, nil)

	start := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Simulate(context.Background(), "user-1", start, start.AddDate(0, 0, -1))

	assert.ErrorIs(t, err, domain.ErrValidation)
}
