package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcastano/jobtrackr-be/internal/models"
	"github.com/dcastano/jobtrackr-be/internal/services"
)

// ChallengeHandler handles HTTP requests for challenges.
type ChallengeHandler struct {
	service services.ChallengeServiceProvider
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(service services.ChallengeServiceProvider) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// GetAll handles the request to list the caller's challenges.
func (h *ChallengeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	challenges, err := h.service.GetChallengesForUser(userID)
	if err != nil {
		writeServiceError(w, err, "Challenge")
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

// Get handles the request to get a single challenge by its ID.
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	challenge, err := h.service.GetChallengeByID(chi.URLParam(r, "id"), userID)
	if err != nil {
		writeServiceError(w, err, "Challenge")
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// Create handles the request to start a new challenge.
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var challenge models.Challenge
	if err := json.NewDecoder(r.Body).Decode(&challenge); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	challenge.UserID = userID

	created, err := h.service.CreateChallenge(challenge)
	if err != nil {
		writeServiceError(w, err, "Challenge")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles the request to update an existing challenge.
func (h *ChallengeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var challenge models.Challenge
	if err := json.NewDecoder(r.Body).Decode(&challenge); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateChallenge(chi.URLParam(r, "id"), userID, challenge)
	if err != nil {
		writeServiceError(w, err, "Challenge")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a challenge.
func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	if err := h.service.DeleteChallenge(chi.URLParam(r, "id"), userID); err != nil {
		writeServiceError(w, err, "Challenge")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Challenge deleted"})
}

// AddProgress handles the request to apply a progress delta to a challenge.
func (h *ChallengeHandler) AddProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var payload struct {
		Progress float64 `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.AddProgress(chi.URLParam(r, "id"), userID, payload.Progress)
	if err != nil {
		writeServiceError(w, err, "Challenge")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
