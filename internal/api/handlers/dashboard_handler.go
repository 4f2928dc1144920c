package handlers

import (
	"net/http"

	"github.com/dcastano/jobtrackr-be/internal/services"
)

// DashboardHandler serves the aggregated dashboard summary.
type DashboardHandler struct {
	service services.DashboardServiceProvider
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service services.DashboardServiceProvider) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary handles the request for the dashboard summary.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	summary, err := h.service.GetDashboardSummary(userID)
	if err != nil {
		writeServiceError(w, err, "Dashboard")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
