package models

import "time"

// Profile holds the display fields handed over by the identity provider
type Profile struct {
	OwnerID          string    `json:"ownerId"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"displayName"`
	RemindersEnabled bool      `json:"remindersEnabled"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// UpdateProfileRequest represents a request to update the caller's profile
//
// Empty email and display name fall back to the values in the access token.
type UpdateProfileRequest struct {
	Email            string `json:"email"`
	DisplayName      string `json:"displayName"`
	RemindersEnabled *bool  `json:"remindersEnabled"`
}

// ReminderCandidate is an owner with reminders enabled whose last activity was on LastActive
type ReminderCandidate struct {
	OwnerID     string
	Email       string
	DisplayName string
	LastActive  time.Time
}
