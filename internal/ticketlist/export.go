package ticketlist

import (
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

const (
	// ContentType is the MIME type of exported files.
	ContentType = "text/csv;charset=utf-8"

	dateLayout       = "2006-01-02"
	timestampLayout  = "2006-01-02 15:04:05"
	fileStampLayout  = "2006-01-02_15-04-05"
	unboundedSegment = "all"
	allReasonsSlug   = "all-reasons"
)

var exportHeader = []string{
	"ID",
	"Trip ID",
	"Trip Date",
	"Driver ID",
	"Reason",
	"City",
	"Service Type",
	"Customer Phone",
	"Agent Name",
	"Created At",
}

// Export is a downloadable CSV artifact.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportCSV renders the whole sorted view (never a single page). It returns
// ok=false and no artifact when the view is empty. Created At is written in
// the location of now, which callers set to the local zone.
func ExportCSV(sorted []domain.Ticket, q Query, now time.Time) (Export, bool) {
	if len(sorted) == 0 {
		return Export{}, false
	}

	var b strings.Builder
	writeRow(&b, exportHeader)
	loc := now.Location()
	for _, t := range sorted {
		b.WriteByte('\n')
		writeRow(&b, []string{
			t.ID,
			t.TripID,
			t.TripDate.Format(dateLayout),
			strconv.FormatInt(t.DriverID, 10),
			string(t.Reason),
			t.City,
			t.ServiceType,
			t.CustomerPhone,
			t.AgentName,
			t.CreatedAt.In(loc).Format(timestampLayout),
		})
	}

	return Export{
		Filename:    Filename(q, now),
		ContentType: ContentType,
		Body:        []byte(b.String()),
	}, true
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeField(f))
	}
}

// EscapeField quotes value only when it contains a comma, a double quote or a
// newline, doubling any embedded quotes.
func EscapeField(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// Filename derives tickets_{reason}_{from}_to_{to}_{stamp}.csv for an export
// taken at now.
func Filename(q Query, now time.Time) string {
	return "tickets_" + reasonSlug(q.Reason) +
		"_" + boundSegment(q.From) +
		"_to_" + boundSegment(q.To) +
		"_" + now.Format(fileStampLayout) + ".csv"
}

func reasonSlug(r domain.TicketReason) string {
	if r == "" {
		return allReasonsSlug
	}
	return strings.Join(strings.Fields(strings.ToLower(string(r))), "-")
}

func boundSegment(t *time.Time) string {
	if t == nil {
		return unboundedSegment
	}
	return t.Format(dateLayout)
}
