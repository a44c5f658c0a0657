package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// errorResponse is the envelope every error body uses.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v with the given status. Encoding failures are logged by
// net/http's panic recovery upstream; headers are already sent by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the wire: 404 for missing resources,
// 422 for domain validation failures, 403 for tier or ownership refusals,
// 502 for notification dispatch failures, and 500 for everything else.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{errorDetail{Code: "not_found", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrPermission):
		writeJSON(w, http.StatusForbidden, errorResponse{errorDetail{Code: "permission_denied", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrDispatch):
		writeJSON(w, http.StatusBadGateway, errorResponse{errorDetail{Code: "dispatch_failed", Message: "notification could not be delivered"}})
	default:
		s.logger.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{errorDetail{Code: "internal_error", Message: "internal server error"}})
	}
}

// badRequest rejects a request before it reaches the service layer
// (malformed JSON, unparseable ID or date).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{errorDetail{Code: "bad_request", Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.TripService.Create: validation error: \"US\" is not a
// Schengen member state" becomes the trailing clause.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrPermission.Error() + ": ",
		domain.ErrNotFound.Error() + ": ",
	} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	// Strip "service.X.Y: " style prefixes when no sentinel text follows.
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
