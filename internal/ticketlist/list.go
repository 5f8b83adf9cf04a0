package ticketlist

import (
	"slices"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// Filter returns the tickets matching q in their input order.
func Filter(tickets []domain.Ticket, q Query) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if q.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortNewestFirst returns a copy ordered by CreatedAt descending. Tickets created
// at the same instant keep their relative input order.
func SortNewestFirst(tickets []domain.Ticket) []domain.Ticket {
	out := slices.Clone(tickets)
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(tickets []domain.Ticket) {
	slices.SortStableFunc(tickets, func(a, b domain.Ticket) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Apply filters and sorts in one pass; the result is the view that both
// pagination and export work from.
func Apply(tickets []domain.Ticket, q Query) []domain.Ticket {
	out := Filter(tickets, q)
	sortNewestFirst(out)
	return out
}
