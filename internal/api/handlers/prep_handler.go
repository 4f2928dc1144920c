package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcastano/jobtrackr-be/internal/models"
	"github.com/dcastano/jobtrackr-be/internal/services"
)

// PrepHandler handles HTTP requests for prep activities.
type PrepHandler struct {
	service   services.PrepServiceProvider
	dashboard services.DashboardServiceProvider
}

// NewPrepHandler creates a new PrepHandler.
func NewPrepHandler(service services.PrepServiceProvider, dashboard services.DashboardServiceProvider) *PrepHandler {
	return &PrepHandler{service: service, dashboard: dashboard}
}

// GetAll handles the request to list the caller's prep activities.
func (h *PrepHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	activities, err := h.service.GetActivitiesForUser(userID)
	if err != nil {
		writeServiceError(w, err, "Prep activity")
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// Get handles the request to get a single prep activity by its ID.
func (h *PrepHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	activity, err := h.service.GetActivityByID(chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, err, "Prep activity")
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

// Create handles the request to log a new prep activity.
func (h *PrepHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var activity models.PrepActivity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	activity.UserID = userID

	created, err := h.service.CreateActivity(activity)
	if err != nil {
		writeServiceError(w, err, "Prep activity")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles the request to update an existing prep activity.
func (h *PrepHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var activity models.PrepActivity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateActivity(chi.URLParam(r, "id"), userID, activity)
	if err != nil {
		writeServiceError(w, err, "Prep activity")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a prep activity.
func (h *PrepHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	if err := h.service.DeleteActivity(chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, err, "Prep activity")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Prep activity deleted"})
}

// Stats handles the request for the prep activity statistics summary.
func (h *PrepHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	stats, err := h.dashboard.GetPrepStats(userID)
	if err != nil {
		writeServiceError(w, err, "Prep activity")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
