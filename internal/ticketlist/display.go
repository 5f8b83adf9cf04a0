package ticketlist

import "github.com/spec-kit/complaint-desk/internal/domain"

const shortIDLength = 6

// ShortID is the truncated id shown in tables; exports always carry the full id.
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= shortIDLength {
		return id
	}
	return string(r[len(r)-shortIDLength:])
}

// ReasonCount is a per-reason tally for the dashboard badges.
type ReasonCount struct {
	Reason   domain.TicketReason
	Priority int
	Variant  string
	Count    int
}

// Summarize counts tickets per reason in priority order, including reasons with
// no tickets.
func Summarize(tickets []domain.Ticket) []ReasonCount {
	counts := make(map[domain.TicketReason]int, 4)
	for _, t := range tickets {
		counts[t.Reason]++
	}
	reasons := domain.TicketReasons()
	out := make([]ReasonCount, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, ReasonCount{
			Reason:   r,
			Priority: r.Priority(),
			Variant:  r.BadgeVariant(),
			Count:    counts[r],
		})
	}
	return out
}
