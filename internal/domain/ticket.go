package domain

import (
	"fmt"
	"time"
)

// TicketReason enumerates why a ticket was filed. The set is closed.
type TicketReason string

const (
	TicketReasonHarassment     TicketReason = "Harassment"
	TicketReasonTookExtraMoney TicketReason = "Took extra money"
	TicketReasonBadBehavior    TicketReason = "Bad behavior"
	TicketReasonDrop           TicketReason = "Drop"
)

var ticketReasons = []TicketReason{
	TicketReasonHarassment,
	TicketReasonTookExtraMoney,
	TicketReasonBadBehavior,
	TicketReasonDrop,
}

// TicketReasons returns every valid reason ordered by priority rank.
func TicketReasons() []TicketReason {
	out := make([]TicketReason, len(ticketReasons))
	copy(out, ticketReasons)
	return out
}

// ParseTicketReason matches value exactly (case-sensitive) against the known reasons.
func ParseTicketReason(value string) (TicketReason, error) {
	for _, r := range ticketReasons {
		if string(r) == value {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown ticket reason %q", value)
}

// Valid reports whether r is one of the known reasons.
func (r TicketReason) Valid() bool {
	_, err := ParseTicketReason(string(r))
	return err == nil
}

// Priority is the display rank used for badge styling, 1 being the most severe.
// It never affects filtering or ordering. Unknown reasons rank 0.
func (r TicketReason) Priority() int {
	switch r {
	case TicketReasonHarassment:
		return 1
	case TicketReasonTookExtraMoney:
		return 2
	case TicketReasonBadBehavior:
		return 3
	case TicketReasonDrop:
		return 4
	default:
		return 0
	}
}

// BadgeVariant names the dashboard badge style for the reason.
func (r TicketReason) BadgeVariant() string {
	switch r {
	case TicketReasonHarassment:
		return "destructive"
	case TicketReasonTookExtraMoney:
		return "default"
	case TicketReasonBadBehavior:
		return "secondary"
	default:
		return "outline"
	}
}

// Ticket is a trip complaint filed by an agent. Tickets are immutable once created.
type Ticket struct {
	ID            string
	TripID        string
	TripDate      time.Time
	DriverID      int64
	Reason        TicketReason
	City          string
	ServiceType   string
	CustomerPhone string
	AgentName     string
	CreatedAt     time.Time
}
