package handlers

import (
	"net/http"

	"github.com/dcastano/jobtrackr-be/internal/services"
)

const recentEventLimit = 50

// EventHandler serves the caller's activity feed.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to list the caller's recent events.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	events, err := h.service.GetRecentEvents(userID, recentEventLimit)
	if err != nil {
		writeServiceError(w, err, "Event")
		return
	}
	writeJSON(w, http.StatusOK, events)
}
