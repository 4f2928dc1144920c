package models

import "time"

// Metric represents a user-defined numeric goal tracked via logged deltas.
type Metric struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Target      float64     `json:"target"`
	Current     float64     `json:"current"`
	Unit        string      `json:"unit"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	UserID      string      `json:"userId"`
	CreatedAt   time.Time   `json:"createdAt"`
	Logs        []MetricLog `json:"metricLogs,omitempty"`
}

// MetricLog is a single delta applied to its parent metric's current value.
type MetricLog struct {
	ID       string    `json:"id"`
	Value    float64   `json:"value"`
	Note     *string   `json:"note,omitempty"`
	Date     time.Time `json:"date"`
	MetricID string    `json:"metricId"`
}
