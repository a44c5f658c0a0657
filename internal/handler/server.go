// Package handler implements the HTTP layer of the compliance API.
// All handlers are methods on Server; they decode and validate the wire
// format, resolve the authenticated owner, and delegate to the service
// interfaces defined here. Methods are split into resource-specific files
// (trip.go, compliance.go, health.go) but share the same Server struct.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// ComplianceServicer answers summary queries. A zero ref means "today".
type ComplianceServicer interface {
	Summary(ctx context.Context, ownerID string, ref time.Time) (domain.ComplianceSummary, error)
}

// SimulationServicer evaluates hypothetical trips.
type SimulationServicer interface {
	Simulate(ctx context.Context, ownerID string, start, end time.Time) (domain.SimulationOutcome, error)
}

// SettingsServicer reads and writes per-owner compliance settings.
type SettingsServicer interface {
	Get(ctx context.Context, ownerID string) (domain.ComplianceSettings, error)
	Update(ctx context.Context, settings domain.ComplianceSettings) (domain.ComplianceSettings, error)
}

// ReportServicer assembles the premium compliance report.
type ReportServicer interface {
	Build(ctx context.Context, ownerID string) (domain.ComplianceReport, error)
}

// AlertTester forces one alert evaluation for the owner, outside the daily
// cycle, and reports what happened.
type AlertTester interface {
	SendTest(ctx context.Context, ownerID string) (domain.AlertTestResult, error)
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	trips       TripServicer
	compliance  ComplianceServicer
	simulations SimulationServicer
	settings    SettingsServicer
	reports     ReportServicer
	alerts      AlertTester
	logger      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	compliance ComplianceServicer,
	simulations SimulationServicer,
	settings SettingsServicer,
	reports ReportServicer,
	alerts AlertTester,
	logger *slog.Logger,
) *Server {
	return &Server{
		trips:       trips,
		compliance:  compliance,
		simulations: simulations,
		settings:    settings,
		reports:     reports,
		alerts:      alerts,
		logger:      logger,
	}
}

// Routes registers every API endpoint on the given router. Authentication is
// applied by the caller, so every handler can rely on an owner ID being
// present in the request context.
func (s *Server) Routes(r chi.Router) {
	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.handleListTrips)
		r.Post("/", s.handleCreateTrip)
		r.Get("/{tripID}", s.handleGetTrip)
		r.Put("/{tripID}", s.handleUpdateTrip)
		r.Delete("/{tripID}", s.handleDeleteTrip)
	})

	r.Route("/compliance", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Post("/simulate", s.handleSimulate)
		r.Get("/report", s.handleReport)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Post("/alert-test", s.handleAlertTest)
	})
}
