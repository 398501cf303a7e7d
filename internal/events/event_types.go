package events

import (
	"time"

	"github.com/spec-kit/lodge-registration/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ApplicationID string      `json:"application_id"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ReferenceNumber string `json:"reference_number"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ReferenceNumber string                   `json:"reference_number"`
	Email           string                   `json:"email"`
	OldStatus       domain.ApplicationStatus `json:"old_status"`
	NewStatus       domain.ApplicationStatus `json:"new_status"`
}
