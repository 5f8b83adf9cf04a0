// ticketctl lists and exports complaint tickets through the complaint-desk API.
//
//	ticketctl list   [--reason R] [--from YYYY-MM-DD] [--to YYYY-MM-DD] [--page N]
//	ticketctl export [--reason R] [--from YYYY-MM-DD] [--to YYYY-MM-DD] [--out DIR]
//
// Export names the file the same way the dashboard does and writes nothing
// when no ticket matches the filters.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/spec-kit/complaint-desk/internal/client"
	"github.com/spec-kit/complaint-desk/internal/ticketlist"
)

const dateLayout = "2006-01-02"

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// filterFlags are shared by every subcommand.
type filterFlags struct {
	api     string
	reason  string
	from    string
	to      string
	timeout time.Duration
}

func (f *filterFlags) add(fs *pflag.FlagSet) {
	fs.StringVar(&f.api, "api", envOr("TICKETCTL_API", "http://localhost:3000/api"), "API base URL")
	fs.StringVar(&f.reason, "reason", ticketlist.AllReasons, `reason filter, or "all"`)
	fs.StringVar(&f.from, "from", "", "earliest trip date (inclusive, YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "latest trip date (inclusive, YYYY-MM-DD)")
	fs.DurationVar(&f.timeout, "timeout", 10*time.Second, "request timeout")
}

func (f *filterFlags) query() (ticketlist.Query, error) {
	reason, err := ticketlist.ParseReasonFilter(f.reason)
	if err != nil {
		return ticketlist.Query{}, err
	}
	from, err := parseDate("from", f.from)
	if err != nil {
		return ticketlist.Query{}, err
	}
	to, err := parseDate("to", f.to)
	if err != nil {
		return ticketlist.Query{}, err
	}
	return ticketlist.Query{Reason: reason, From: from, To: to}, nil
}

func run(args []string, stdout io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		return errors.New("usage: ticketctl <list|export> [flags]")
	}
	switch args[0] {
	case "list":
		return runList(args[1:], stdout)
	case "export":
		return runExport(args[1:], stdout, now)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runList(args []string, stdout io.Writer) error {
	var filters filterFlags
	var page int
	fs := pflag.NewFlagSet("ticketctl list", pflag.ContinueOnError)
	filters.add(fs)
	fs.IntVar(&page, "page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, err := filters.query()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), filters.timeout)
	defer cancel()
	result, err := client.New(filters.api).ListTickets(ctx, q, page)
	if err != nil {
		return err
	}

	if result.Total == 0 {
		fmt.Fprintln(stdout, "No tickets found")
		return nil
	}
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRIP ID\tTRIP DATE\tDRIVER\tREASON\tCITY\tAGENT\tCREATED AT")
	for _, t := range result.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			t.ShortID, t.TripID, t.TripDate, t.DriverID, t.Reason, t.City, t.AgentName,
			t.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nShowing %d to %d of %d tickets (page %d of %d)\n",
		result.Range.From, result.Range.To, result.Total, result.Page, result.TotalPages)
	return nil
}

func runExport(args []string, stdout io.Writer, now func() time.Time) error {
	var filters filterFlags
	var outDir string
	fs := pflag.NewFlagSet("ticketctl export", pflag.ContinueOnError)
	filters.add(fs)
	fs.StringVarP(&outDir, "out", "o", ".", "directory to write the CSV into")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, err := filters.query()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), filters.timeout)
	defer cancel()
	body, ok, err := client.New(filters.api).ExportTickets(ctx, q)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	path := filepath.Join(outDir, ticketlist.Filename(q, now()))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintln(stdout, path)
	return nil
}

func parseDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: expected YYYY-MM-DD", name, value)
	}
	return &t, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
