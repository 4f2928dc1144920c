package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcastano/jobtrackr-be/internal/models"
	"github.com/dcastano/jobtrackr-be/internal/services"
)

// JobHandler handles HTTP requests for job applications.
type JobHandler struct {
	service   services.JobServiceProvider
	dashboard services.DashboardServiceProvider
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobServiceProvider, dashboard services.DashboardServiceProvider) *JobHandler {
	return &JobHandler{service: service, dashboard: dashboard}
}

// GetAll handles the request to list the caller's job applications.
func (h *JobHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	jobs, err := h.service.GetJobsForUser(userID)
	if err != nil {
		writeServiceError(w, err, "Job application")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// Get handles the request to get a single job application by its ID.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	job, err := h.service.GetJobByID(chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, err, "Job application")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// Create handles the request to track a new job application.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var job models.JobApplication
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job.UserID = userID

	created, err := h.service.CreateJob(job)
	if err != nil {
		writeServiceError(w, err, "Job application")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles the request to update an existing job application.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var job models.JobApplication
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateJob(chi.URLParam(r, "id"), userID, job)
	if err != nil {
		writeServiceError(w, err, "Job application")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a job application.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	if err := h.service.DeleteJob(chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, err, "Job application")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Job application deleted"})
}

// Stats handles the request for the job application statistics summary.
func (h *JobHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	stats, err := h.dashboard.GetJobStats(userID)
	if err != nil {
		writeServiceError(w, err, "Job application")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
