package models

import "time"

// Job application statuses. Stats tally these with exact, case-sensitive matches.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
)

// JobStatuses lists the fixed status label set in tally order.
var JobStatuses = []string{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// JobApplication represents one tracked job application.
type JobApplication struct {
	ID              string    `json:"id"`
	JobTitle        string    `json:"jobTitle"`
	Company         string    `json:"company"`
	ApplicationURL  *string   `json:"applicationUrl,omitempty"`
	ResumeVersion   *string   `json:"resumeVersion,omitempty"`
	ContactName     *string   `json:"contactName,omitempty"`
	ContactEmail    *string   `json:"contactEmail,omitempty"`
	ContactLinkedIn *string   `json:"contactLinkedIn,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	AppliedDate     time.Time `json:"appliedDate"`
	UserID          string    `json:"userId"`
	CreatedAt       time.Time `json:"createdAt"`
}
