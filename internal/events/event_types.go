package events

import (
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventUserCreated            EventType = "user_created"
	EventTicketCreated          EventType = "ticket_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	UserID int64  `json:"user_id"`
	Title  string `json:"title"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Email string `json:"email"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TripID   string              `json:"trip_id"`
	DriverID int64               `json:"driver_id"`
	Reason   domain.TicketReason `json:"reason"`
	Priority int                 `json:"priority"`
}
