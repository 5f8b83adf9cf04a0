package ticketlist

import (
	"slices"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// Page is one PageSize slice of a sorted view.
type Page struct {
	Items      []domain.Ticket
	Number     int
	TotalPages int
	Total      int
}

// TotalPages is ceil(count/PageSize); an empty view has zero pages.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// ClampPage pins page into [1, totalPages]. With no pages the result is 1.
func ClampPage(page, totalPages int) int {
	if page < 1 || totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices a sorted view. Out-of-range page numbers are clamped, so the
// returned Number may differ from the requested one.
func Paginate(sorted []domain.Ticket, page int) Page {
	total := len(sorted)
	pages := TotalPages(total)
	number := ClampPage(page, pages)

	start := min((number-1)*PageSize, total)
	end := min(start+PageSize, total)

	return Page{
		Items:      slices.Clone(sorted[start:end]),
		Number:     number,
		TotalPages: pages,
		Total:      total,
	}
}

// Range returns the 1-based positions of the first and last item on the page,
// as in "Showing 21 to 40 of 57". Both are zero for an empty view.
func (p Page) Range() (first, last int) {
	if p.Total == 0 || len(p.Items) == 0 {
		return 0, 0
	}
	first = (p.Number-1)*PageSize + 1
	last = min(p.Number*PageSize, p.Total)
	return first, last
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }
