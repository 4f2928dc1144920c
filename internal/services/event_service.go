package services

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

// Broadcaster pushes a payload to every live connection of a single user.
// The websocket hub implements this.
type Broadcaster interface {
	BroadcastTo(userID string, message []byte)
}

// EventServiceProvider defines the interface for activity event services.
type EventServiceProvider interface {
	CreateEvent(userID, eventType, level, message string, entityID *string)
	GetRecentEvents(userID string, limit int) ([]models.Event, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}

// EventService records activity feed entries and fans them out to any
// connected dashboard.
type EventService struct {
	db  *sql.DB
	hub Broadcaster // may be nil when no live delivery is wanted
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, hub Broadcaster) *EventService {
	return &EventService{db: db, hub: hub}
}

// CreateEvent logs a new event and broadcasts it. Event recording is best
// effort: a failure here must never fail the mutation that triggered it.
func (s *EventService) CreateEvent(userID, eventType, level, message string, entityID *string) {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		EntityID:  entityID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	_, err := s.db.Exec(
		"INSERT INTO events (id, type, level, message, entity_id, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.EntityID, event.UserID, event.CreatedAt,
	)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record activity event")
		return
	}

	if s.hub != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode activity event")
			return
		}
		s.hub.BroadcastTo(userID, payload)
	}
}

// GetRecentEvents retrieves the most recent events for a user.
func (s *EventService) GetRecentEvents(userID string, limit int) ([]models.Event, error) {
	rows, err := s.db.Query(
		"SELECT id, type, level, message, entity_id, user_id, created_at FROM events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		var entityID sql.NullString
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &entityID, &event.UserID, &event.CreatedAt); err != nil {
			return nil, err
		}
		if entityID.Valid {
			event.EntityID = &entityID.String
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneOlderThan deletes events created before the cutoff and reports how
// many rows were removed.
func (s *EventService) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
