package models

import "time"

// Event represents an entry in a user's activity feed.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "job.create", "challenge.progress"
	Level     string    `json:"level"` // e.g., "info", "warn"
	Message   string    `json:"message"`
	EntityID  *string   `json:"entityId,omitempty"` // Nullable for account-wide events
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
