package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/middleware"
)

// handleSummary handles GET /compliance/summary?date=YYYY-MM-DD.
// Without a date parameter the summary is computed for today.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var ref time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(w, "date must be formatted YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	summary, err := s.compliance.Summary(r.Context(), middleware.GetOwnerID(r.Context()), ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// handleSimulate handles POST /compliance/simulate.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	outcome, err := s.simulations.Simulate(r.Context(), middleware.GetOwnerID(r.Context()), req.StartDate.Time, req.EndDate.Time)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSimulationResponse(outcome))
}

// handleReport handles GET /compliance/report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Build(r.Context(), middleware.GetOwnerID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Trips:       toTripResponses(report.Trips),
		Summary:     toSummaryResponse(report.Summary),
		GeneratedAt: report.GeneratedAt,
	})
}

// handleGetSettings handles GET /compliance/settings.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context(), middleware.GetOwnerID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// handlePutSettings handles PUT /compliance/settings.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	settings, err := s.settings.Update(r.Context(), domain.ComplianceSettings{
		OwnerID:               middleware.GetOwnerID(r.Context()),
		YellowThreshold:       req.YellowThreshold,
		RedThreshold:          req.RedThreshold,
		EmailAlerts:           req.EmailAlerts,
		UpcomingTripReminders: req.UpcomingTripReminders,
		AlertEmail:            req.AlertEmail,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

// handleAlertTest handles POST /compliance/alert-test: runs one real alert
// evaluation for the owner and reports whether thresholds were met and
// whether a notification was actually sent.
func (s *Server) handleAlertTest(w http.ResponseWriter, r *http.Request) {
	result, err := s.alerts.SendTest(r.Context(), middleware.GetOwnerID(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alertTestResponse{
		ThresholdsMet: result.ThresholdsMet,
		Sent:          result.Sent,
	})
}
