package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
	"github.com/Relo2France/france-relocation-assistant-sub001/internal/middleware"
)

// handleListTrips handles GET /trips?page=&limit=.
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	p := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.ListPaged(r.Context(), ownerID, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripListResponse{
		Trips: toTripResponses(trips),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// handleCreateTrip handles POST /trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.Create(r.Context(), tripFromRequest(req, middleware.GetOwnerID(r.Context()), uuid.Nil))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTripResponse(trip))
}

// handleGetTrip handles GET /trips/{tripID}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), middleware.GetOwnerID(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

// handleUpdateTrip handles PUT /trips/{tripID}.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.Update(r.Context(), tripFromRequest(req, middleware.GetOwnerID(r.Context()), id))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

// handleDeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), middleware.GetOwnerID(r.Context()), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// tripFromRequest maps the wire format onto a domain.Trip for the service.
func tripFromRequest(req tripRequest, ownerID string, id uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:        id,
		OwnerID:   ownerID,
		Country:   req.Country,
		Category:  domain.TripCategory(req.Category),
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
		Notes:     req.Notes,
	}
}

// tripID parses the {tripID} path parameter, writing a 400 on failure.
func tripID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		badRequest(w, "invalid trip id")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses one integer query parameter, returning nil when absent or
// malformed so pagination falls back to its defaults.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
