package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dcastano/jobtrackr-be/internal/models"
	"github.com/dcastano/jobtrackr-be/internal/services"
)

// MetricHandler handles HTTP requests for metrics and their logs.
type MetricHandler struct {
	service services.MetricServiceProvider
}

// NewMetricHandler creates a new MetricHandler.
func NewMetricHandler(service services.MetricServiceProvider) *MetricHandler {
	return &MetricHandler{service: service}
}

// GetAll handles the request to list the caller's metrics.
func (h *MetricHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	metrics, err := h.service.GetMetricsForUser(userID)
	if err != nil {
		writeServiceError(w, err, "Metric")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// Get handles the request to get a single metric by its ID.
func (h *MetricHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	metric, err := h.service.GetMetricByID(chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, err, "Metric")
		return
	}
	writeJSON(w, http.StatusOK, metric)
}

// Create handles the request to create a new metric.
func (h *MetricHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var metric models.Metric
	if err := json.NewDecoder(r.Body).Decode(&metric); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	metric.UserID = userID

	created, err := h.service.CreateMetric(metric)
	if err != nil {
		writeServiceError(w, err, "Metric")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles the request to update an existing metric.
func (h *MetricHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var metric models.Metric
	if err := json.NewDecoder(r.Body).Decode(&metric); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateMetric(chi.URLParam(r, "id"), userID, metric)
	if err != nil {
		writeServiceError(w, err, "Metric")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a metric and its logs.
func (h *MetricHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	if err := h.service.DeleteMetric(chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, err, "Metric")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Metric deleted"})
}

// AddLog handles the request to append a log entry to a metric.
func (h *MetricHandler) AddLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var payload struct {
		Value float64    `json:"value"`
		Note  *string    `json:"note"`
		Date  *time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.service.AddLog(chi.URLParam(r, "id"), userID, payload.Value, payload.Note, payload.Date)
	if err != nil {
		writeServiceError(w, err, "Metric")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
