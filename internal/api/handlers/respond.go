package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dcastano/jobtrackr-be/internal/auth"
	"github.com/dcastano/jobtrackr-be/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps service-layer sentinels to the HTTP boundary. A
// missing row reveals its absence; a foreign row reveals only that the
// caller does not own it. Everything else degrades to a generic failure
// with the detail kept server-side.
func writeServiceError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, models.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "Not authorized")
	default:
		log.Error().Err(err).Str("resource", resource).Msg("Unhandled service error")
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// userIDFromRequest pulls the authenticated user's ID out of the verified
// claims. Identity never comes from request input.
func userIDFromRequest(r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
