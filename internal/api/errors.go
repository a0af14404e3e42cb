package api

import (
	"errors"
	"net/http"

	"github.com/travex/travex/internal/amadeus"
	"github.com/travex/travex/internal/itinerary"
)

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMappedError translates a domain error into an HTTP response.
//
// Taxonomy: validation → 400, unknown id → 404, no pending item → 409,
// unconfigured credentials → 503 (degraded, retryable after configuration),
// provider/auth failures → 502. No error here is fatal; prior state is
// untouched and the caller may simply retry the action.
func writeMappedError(w http.ResponseWriter, err error) {
	var reqErr *amadeus.RequestError

	switch {
	case errors.Is(err, itinerary.ErrValidation), errors.Is(err, amadeus.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, itinerary.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, itinerary.ErrNoPending):
		writeError(w, http.StatusConflict, "no pending item to assign")
	case errors.Is(err, amadeus.ErrCredentialsMissing):
		writeError(w, http.StatusServiceUnavailable, "travel search is disabled: provider credentials are not configured")
	case errors.Is(err, amadeus.ErrAuthFailure):
		writeError(w, http.StatusBadGateway, "travel provider authentication failed")
	case errors.As(err, &reqErr):
		writeError(w, http.StatusBadGateway, "travel provider request failed: "+reqErr.Op)
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
