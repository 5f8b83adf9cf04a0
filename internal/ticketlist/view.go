package ticketlist

import (
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// View is the dashboard state: the active query plus the current page. It is a
// value; every transition returns a new View. Any change to the reason or the
// date bounds resets the page to 1, and that rule lives only here.
type View struct {
	Query
	Page int
}

// NewView starts on page 1 with no filters.
func NewView() View {
	return View{Page: 1}
}

// WithReason switches the reason filter; a zero reason selects all reasons.
func (v View) WithReason(r domain.TicketReason) View {
	v.Reason = r
	return v.firstPage()
}

// WithFrom sets or clears (nil) the inclusive lower trip-date bound.
func (v View) WithFrom(t *time.Time) View {
	v.From = cloneTime(t)
	return v.firstPage()
}

// WithTo sets or clears (nil) the inclusive upper trip-date bound.
func (v View) WithTo(t *time.Time) View {
	v.To = cloneTime(t)
	return v.firstPage()
}

// ClearDates drops both date bounds.
func (v View) ClearDates() View {
	v.From, v.To = nil, nil
	return v.firstPage()
}

// WithPage jumps to page n. Render clamps it against the current view.
func (v View) WithPage(n int) View {
	v.Page = n
	return v
}

// Next advances one page without passing totalPages.
func (v View) Next(totalPages int) View {
	v.Page = ClampPage(v.Page+1, totalPages)
	return v
}

// Prev moves back one page, stopping at 1.
func (v View) Prev() View {
	v.Page = max(1, v.Page-1)
	return v
}

// Render computes the page the view currently shows.
func (v View) Render(tickets []domain.Ticket) Page {
	return Paginate(Apply(tickets, v.Query), v.Page)
}

func (v View) firstPage() View {
	v.Page = 1
	return v
}
