package models

import "time"

// MetricSummary is the trimmed metric shape used on the dashboard.
type MetricSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Unit    string  `json:"unit"`
}

// JobStatusTally holds the funnel counts shown on the dashboard.
type JobStatusTally struct {
	TotalApplications int `json:"totalApplications"`
	Interviews        int `json:"interviews"`
	Offers            int `json:"offers"`
	Rejected          int `json:"rejected"`
}

// ChallengeSummary is the trimmed challenge shape used on the dashboard.
type ChallengeSummary struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Current float64   `json:"current"`
	Target  float64   `json:"target"`
	EndDate time.Time `json:"endDate"`
}

// Streak carries the consecutive-day application flags.
type Streak struct {
	HasAppliedToday     bool `json:"hasAppliedToday"`
	HasAppliedYesterday bool `json:"hasAppliedYesterday"`
}

// DashboardSummary joins everything the dashboard renders in one response.
type DashboardSummary struct {
	Metrics    []MetricSummary    `json:"metrics"`
	JobStats   JobStatusTally     `json:"jobStats"`
	Challenges []ChallengeSummary `json:"challenges"`
	RecentPrep []PrepActivity     `json:"recentPrep"`
	Streak     Streak             `json:"streak"`
}

// JobStats is the response for the job statistics endpoint.
type JobStats struct {
	TotalApplications  int            `json:"totalApplications"`
	StatusCounts       map[string]int `json:"statusCounts"`
	ApplicationsPerDay map[string]int `json:"applicationsPerDay"`
}

// PrepStats is the response for the prep statistics endpoint.
type PrepStats struct {
	TotalActivities  int                `json:"totalActivities"`
	TypeCounts       map[string]int     `json:"typeCounts"`
	TypeRatings      map[string]float64 `json:"typeRatings"`
	ActivitiesPerDay map[string]int     `json:"activitiesPerDay"`
}
