package domain

import "time"

// User is an end-user account used to track own submissions. Applications
// correlate to users by email equality, not by an owning reference.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
