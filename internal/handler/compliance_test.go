package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/handler"
)

// ---- mock services ---------------------------------------------------------

type mockComplianceServicer struct {
	summary func(ctx context.Context, ownerID string, ref time.Time) (domain.ComplianceSummary, error)
}

func (m *mockComplianceServicer) Summary(ctx context.Context, ownerID string, ref time.Time) (domain.ComplianceSummary, error) {
	return m.summary(ctx, ownerID, ref)
}

type mockSimulationServicer struct {
	simulate func(ctx context.Context, ownerID string, start, end time.Time) (domain.SimulationOutcome, error)
}

func (m *mockSimulationServicer) Simulate(ctx context.Context, ownerID string, start, end time.Time) (domain.SimulationOutcome, error) {
	return m.simulate(ctx, ownerID, start, end)
}

type mockSettingsServicer struct {
	get    func(ctx context.Context, ownerID string) (domain.ComplianceSettings, error)
	update func(ctx context.Context, settings domain.ComplianceSettings) (domain.ComplianceSettings, error)
}

func (m *mockSettingsServicer) Get(ctx context.Context, ownerID string) (domain.ComplianceSettings, error) {
	return m.get(ctx, ownerID)
}
func (m *mockSettingsServicer) Update(ctx context.Context, settings domain.ComplianceSettings) (domain.ComplianceSettings, error) {
	return m.update(ctx, settings)
}

type mockReportServicer struct {
	build func(ctx context.Context, ownerID string) (domain.ComplianceReport, error)
}

func (m *mockReportServicer) Build(ctx context.Context, ownerID string) (domain.ComplianceReport, error) {
	return m.build(ctx, ownerID)
}

type mockAlertTester struct {
	sendTest func(ctx context.Context, ownerID string) (domain.AlertTestResult, error)
}

func (m *mockAlertTester) SendTest(ctx context.Context, ownerID string) (domain.AlertTestResult, error) {
	return m.sendTest(ctx, ownerID)
}

var (
	_ handler.ComplianceServicer = (*mockComplianceServicer)(nil)
	_ handler.SimulationServicer = (*mockSimulationServicer)(nil)
	_ handler.SettingsServicer   = (*mockSettingsServicer)(nil)
	_ handler.ReportServicer     = (*mockReportServicer)(nil)
	_ handler.AlertTester        = (*mockAlertTester)(nil)
)

func summaryFixture() domain.ComplianceSummary {
	ref := time.Date(2024, 7, 25, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC)
	return domain.ComplianceSummary{
		ReferenceDate:  ref,
		DaysUsed:       20,
		DaysRemaining:  70,
		WindowStart:    time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC),
		WindowEnd:      ref,
		Status:         domain.StatusSafe,
		NextExpiration: &exp,
		Thresholds:     domain.StatusThresholds{Yellow: 60, Red: 80},
	}
}

// ---- GET /compliance/summary -----------------------------------------------

func TestSummary_200(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		compliance: &mockComplianceServicer{
			summary: func(_ context.Context, ownerID string, ref time.Time) (domain.ComplianceSummary, error) {
				assert.Equal(t, "user-1", ownerID)
				assert.True(t, ref.IsZero())
				return summaryFixture(), nil
			},
		},
	})

	rec := doRequest(h, auth, http.MethodGet, "/compliance/summary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.EqualValues(t, 20, got["days_used"])
	assert.EqualValues(t, 70, got["days_remaining"])
	assert.Equal(t, "safe", got["status"])
	assert.Equal(t, "2024-01-28", got["window_start"])
	assert.Equal(t, "2024-12-28", got["next_expiration"])
}

func TestSummary_WithDate_200(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		compliance: &mockComplianceServicer{
			summary: func(_ context.Context, _ string, ref time.Time) (domain.ComplianceSummary, error) {
				assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), ref)
				return summaryFixture(), nil
			},
		},
	})

	rec := doRequest(h, auth, http.MethodGet, "/compliance/summary?date=2025-01-15", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSummary_BadDate_400(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{compliance: &mockComplianceServicer{}})

	rec := doRequest(h, auth, http.MethodGet, "/compliance/summary?date=15-01-2025", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- POST /compliance/simulate ---------------------------------------------

func TestSimulate_200(t *testing.T) {
	safe := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	h, auth := newAPI(t, "user-1", serverMocks{
		simulations: &mockSimulationServicer{
			simulate: func(_ context.Context, _ string, start, end time.Time) (domain.SimulationOutcome, error) {
				assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), start)
				return domain.SimulationOutcome{
					WouldViolate:     true,
					Violations:       []time.Time{time.Date(2024, 8, 6, 0, 0, 0, 0, time.UTC)},
					MaxDaysUsed:      95,
					ProposedLength:   10,
					DaysOverLimit:    5,
					EarliestSafeDate: &safe,
					MaxSafeLength:    5,
				}, nil
			},
		},
	})

	body := jsonBody(t, map[string]any{"start_date": "2024-08-01", "end_date": "2024-08-10"})
	rec := doRequest(h, auth, http.MethodPost, "/compliance/simulate", body)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, true, got["would_violate"])
	assert.EqualValues(t, 95, got["max_days_used"])
	assert.Equal(t, "2024-11-01", got["earliest_safe_date"])
	violations := got["violations"].([]any)
	require.Len(t, violations, 1)
	assert.Equal(t, "2024-08-06", violations[0])
}

func TestSimulate_FreeTier_403(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		simulations: &mockSimulationServicer{
			simulate: func(_ context.Context, _ string, _, _ time.Time) (domain.SimulationOutcome, error) {
				return domain.SimulationOutcome{}, domain.ErrPermission
			},
		},
	})

	body := jsonBody(t, map[string]any{"start_date": "2024-08-01", "end_date": "2024-08-10"})
	rec := doRequest(h, auth, http.MethodPost, "/compliance/simulate", body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSimulate_InvalidRange_422(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		simulations: &mockSimulationServicer{
			simulate: func(_ context.Context, _ string, _, _ time.Time) (domain.SimulationOutcome, error) {
				return domain.SimulationOutcome{}, domain.ErrValidation
			},
		},
	})

	body := jsonBody(t, map[string]any{"start_date": "2024-08-10", "end_date": "2024-08-01"})
	rec := doRequest(h, auth, http.MethodPost, "/compliance/simulate", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET /compliance/report ------------------------------------------------

func TestReport_200(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		reports: &mockReportServicer{
			build: func(_ context.Context, _ string) (domain.ComplianceReport, error) {
				return domain.ComplianceReport{
					Trips:       []domain.Trip{tripFixture("user-1")},
					Summary:     summaryFixture(),
					GeneratedAt: time.Date(2024, 7, 25, 9, 30, 0, 0, time.UTC),
				}, nil
			},
		},
	})

	rec := doRequest(h, auth, http.MethodGet, "/compliance/report", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Len(t, got["trips"].([]any), 1)
	assert.EqualValues(t, 20, got["summary"].(map[string]any)["days_used"])
}

func TestReport_FreeTier_403(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		reports: &mockReportServicer{
			build: func(_ context.Context, _ string) (domain.ComplianceReport, error) {
				return domain.ComplianceReport{}, domain.ErrPermission
			},
		},
	})

	rec := doRequest(h, auth, http.MethodGet, "/compliance/report", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ---- GET/PUT /compliance/settings ------------------------------------------

func TestGetSettings_200(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		settings: &mockSettingsServicer{
			get: func(_ context.Context, ownerID string) (domain.ComplianceSettings, error) {
				return domain.DefaultSettings(ownerID), nil
			},
		},
	})

	rec := doRequest(h, auth, http.MethodGet, "/compliance/settings", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.EqualValues(t, domain.DefaultYellowThreshold, got["yellow_threshold"])
	assert.Equal(t, true, got["email_alerts"])
}

func TestPutSettings_200(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		settings: &mockSettingsServicer{
			update: func(_ context.Context, s domain.ComplianceSettings) (domain.ComplianceSettings, error) {
				assert.Equal(t, "user-1", s.OwnerID)
				assert.Equal(t, 45, s.YellowThreshold)
				return s, nil
			},
		},
	})

	body := jsonBody(t, map[string]any{
		"yellow_threshold": 45,
		"red_threshold":    75,
		"email_alerts":     true,
	})
	rec := doRequest(h, auth, http.MethodPut, "/compliance/settings", body)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPutSettings_InvalidThresholds_422(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		settings: &mockSettingsServicer{
			update: func(_ context.Context, _ domain.ComplianceSettings) (domain.ComplianceSettings, error) {
				return domain.ComplianceSettings{}, domain.ErrValidation
			},
		},
	})

	body := jsonBody(t, map[string]any{"yellow_threshold": 80, "red_threshold": 60})
	rec := doRequest(h, auth, http.MethodPut, "/compliance/settings", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- POST /compliance/alert-test -------------------------------------------

func TestAlertTest_200_ReportsOutcome(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		alerts: &mockAlertTester{
			sendTest: func(_ context.Context, ownerID string) (domain.AlertTestResult, error) {
				assert.Equal(t, "user-1", ownerID)
				return domain.AlertTestResult{ThresholdsMet: true, Sent: true}, nil
			},
		},
	})

	rec := doRequest(h, auth, http.MethodPost, "/compliance/alert-test", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, true, got["thresholds_met"])
	assert.Equal(t, true, got["sent"])
}

func TestAlertTest_200_SuppressedNotSent(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		alerts: &mockAlertTester{
			sendTest: func(_ context.Context, _ string) (domain.AlertTestResult, error) {
				return domain.AlertTestResult{ThresholdsMet: true, Sent: false}, nil
			},
		},
	})

	rec := doRequest(h, auth, http.MethodPost, "/compliance/alert-test", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody(t, rec)
	assert.Equal(t, true, got["thresholds_met"])
	assert.Equal(t, false, got["sent"])
}

func TestAlertTest_DispatchFailure_502(t *testing.T) {
	h, auth := newAPI(t, "user-1", serverMocks{
		alerts: &mockAlertTester{
			sendTest: func(_ context.Context, _ string) (domain.AlertTestResult, error) {
				return domain.AlertTestResult{}, domain.ErrDispatch
			},
		},
	})

	rec := doRequest(h, auth, http.MethodPost, "/compliance/alert-test", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
