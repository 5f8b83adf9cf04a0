// Package ticketlist filters, orders, paginates and exports in-memory ticket
// collections. Every function is pure: inputs are never mutated and results are
// freshly allocated slices.
package ticketlist

import (
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// PageSize is the fixed number of tickets per page.
const PageSize = 20

// AllReasons is the filter value that disables reason filtering.
const AllReasons = "all"

// Query selects the tickets that make up a filtered view.
// A zero Reason matches every reason; nil bounds are open.
type Query struct {
	Reason domain.TicketReason
	From   *time.Time
	To     *time.Time
}

// ParseReasonFilter converts a filter value into a reason. Empty and "all" select
// every reason; anything else must be a known reason.
func ParseReasonFilter(value string) (domain.TicketReason, error) {
	if value == "" || value == AllReasons {
		return "", nil
	}
	return domain.ParseTicketReason(value)
}

// AllReasons reports whether the query keeps tickets of every reason.
func (q Query) AllReasons() bool {
	return q.Reason == ""
}

// Matches reports whether a single ticket belongs to the filtered view.
func (q Query) Matches(t domain.Ticket) bool {
	if q.Reason != "" && t.Reason != q.Reason {
		return false
	}
	day := StartOfDay(t.TripDate)
	if q.From != nil && day.Before(StartOfDay(*q.From)) {
		return false
	}
	if q.To != nil && day.After(EndOfDay(*q.To)) {
		return false
	}
	return true
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 on t's calendar day in t's own location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
