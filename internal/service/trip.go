// Package service contains the business logic for the compliance API.
// Services validate inputs, enforce business rules, and orchestrate repo,
// engine, and collaborator calls. No SQL lives here — services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/cache"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/engine"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/premium"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	trips   repo.TripRepo
	gate    premium.Gate
	summary *cache.SummaryCache
}

// NewTripService constructs a TripService. summary may be nil when the cache
// is not configured.
func NewTripService(trips repo.TripRepo, gate premium.Gate, summary *cache.SummaryCache) *TripService {
	return &TripService{trips: trips, gate: gate, summary: summary}
}

// Create validates and persists a new trip. Free-tier owners are limited to
// three recorded trips; the limit check and the gate lookup happen before any
// write. Returns domain.ErrValidation for invalid input and
// domain.ErrPermission when the free-tier limit is reached.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	isPremium, err := s.gate.IsPremium(ctx, trip.OwnerID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if !isPremium {
		n, err := s.trips.CountByOwner(ctx, trip.OwnerID)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
		if n >= premium.FreeTierTripLimit {
			return domain.Trip{}, fmt.Errorf("%w: free tier is limited to %d trips", domain.ErrPermission, premium.FreeTierTripLimit)
		}
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.summary.Invalidate(ctx, trip.OwnerID)
	return result, nil
}

// GetByID returns a single trip owned by ownerID.
// Returns domain.ErrNotFound for a missing or foreign-owned trip.
func (s *TripService) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns every trip for ownerID, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, ownerID string) ([]domain.Trip, error) {
	trips, err := s.trips.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of trips for ownerID plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound for a
// missing or foreign-owned trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	s.summary.Invalidate(ctx, trip.OwnerID)
	return result, nil
}

// Delete removes a trip by ID for the given owner.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.summary.Invalidate(ctx, ownerID)
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Country must be a Schengen member state code.
//   - Category must be one of the known trip categories.
//   - End date must not precede start date; the inclusive span is capped at 90 days.
func validateTrip(trip domain.Trip) error {
	if !domain.IsSchengenCountry(trip.Country) {
		return fmt.Errorf("%w: %q is not a Schengen member state", domain.ErrValidation, trip.Country)
	}
	if !trip.Category.IsValid() {
		return fmt.Errorf("%w: unknown trip category %q", domain.ErrValidation, trip.Category)
	}
	return engine.ValidateDates(trip.StartDate, trip.EndDate)
}
