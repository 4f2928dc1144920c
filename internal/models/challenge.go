package models

import "time"

// Challenge is a time-bound goal with a target and current progress value.
type Challenge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Target      float64   `json:"target"`
	Current     float64   `json:"current"`
	Unit        string    `json:"unit"`
	IsCompleted bool      `json:"isCompleted"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}
