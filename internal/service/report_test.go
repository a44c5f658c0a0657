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

func TestReportService_FreeTierDenied(t *testing.T) {
	svc := service.NewReportService(&mockTripRepo{}, noSettings(), premium.StaticGate{}, clock)

	_, err := svc.Build(context.Background(), "user-1")

	assert.ErrorIs(t, err, domain.ErrPermission)
}

func TestReportService_Build_OK(t *testing.T) {
	older := validTrip("user-1")
	older.StartDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	older.EndDate = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	newer := validTrip("user-1") // starts 2024-07-01, ends 2024-07-14

	svc := service.NewReportService(
		&mockTripRepo{
			listByOwner: func(_ context.Context, _ string) ([]domain.Trip, error) {
				return []domain.Trip{older, newer}, nil
			},
		},
		noSettings(),
		premium.StaticGate{"user-1": true},
		clock,
	)

	got, err := svc.Build(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, got.Trips, 2)
	assert.True(t, got.Trips[0].StartDate.After(got.Trips[1].StartDate), "newest first")
	assert.Equal(t, 19, got.Summary.DaysUsed) // 5 in March + 14 in July
	assert.True(t, got.GeneratedAt.Equal(fixedNow))
}

func TestReportService_Build_UsesStoredThresholds(t *testing.T) {
	svc := service.NewReportService(
		&mockTripRepo{
			listByOwner: func(_ context.Context, _ string) ([]domain.Trip, error) {
				return nil, nil
			},
		},
		&mockSettingsRepo{
			get: func(_ context.Context, _ string) (domain.ComplianceSettings, error) {
				s := domain.DefaultSettings("user-1")
				s.YellowThreshold = 30
				s.RedThreshold = 60
				return s, nil
			},
		},
		premium.StaticGate{"user-1": true},
		clock,
	)

	got, err := svc.Build(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 30, got.Summary.Thresholds.Yellow)
	assert.Equal(t, 60, got.Summary.Thresholds.Red)
}
