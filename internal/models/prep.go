package models

import "time"

// Prep activity types. Stats tally these with exact, case-sensitive matches.
const (
	PrepDSA           = "DSA"
	PrepSystemDesign  = "SystemDesign"
	PrepMockInterview = "MockInterview"
	PrepLeetcode      = "Leetcode"
)

// PrepTypes lists the fixed activity type set in tally order.
var PrepTypes = []string{PrepDSA, PrepSystemDesign, PrepMockInterview, PrepLeetcode}

// PrepActivity is a logged interview-preparation session.
type PrepActivity struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Date       time.Time `json:"date"`
	SelfRating *int      `json:"selfRating,omitempty"` // 1-5, optional
	Notes      *string   `json:"notes,omitempty"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}
