package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/journeys/internal/tracefile"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// traceReport is what the trace command prints for one archive.
type traceReport struct {
	Path          string                 `json:"path"`
	Entries       []string               `json:"entries"`
	Entry         string                 `json:"entry"`
	Events        []tracefile.TraceEvent `json:"events,omitempty"`
	NetworkEvents int                    `json:"networkEvents"`
	CountByType   map[string]int         `json:"countByType"`
}

func newTraceCommand() *cobra.Command {
	var (
		entry       string
		asJSON      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "trace <trace.zip>...",
		Short: "Summarize trace archives",
		Long: `Read one or more trace archives and print the number of events of each
type. Archives are loaded concurrently and printed in argument order.

By default the trace.trace entry is read. Use --entry to read another entry
such as trace.network.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := loadTraceReports(cmd.Context(), args, entry, concurrency)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}
			for _, r := range reports {
				printTraceReport(out, r)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entry, "entry", tracefile.TraceEntry, "Archive entry to read")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print reports, including every event, as JSON")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Maximum archives loaded at once")

	return cmd
}

func loadTraceReports(ctx context.Context, paths []string, entry string, concurrency int) ([]traceReport, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	reports := make([]traceReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := loadTraceReport(path, entry)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func loadTraceReport(path, entry string) (traceReport, error) {
	a, err := tracefile.Open(path)
	if err != nil {
		return traceReport{}, err
	}
	defer a.Close()

	events, err := a.Events(entry)
	if err != nil {
		return traceReport{}, fmt.Errorf("%s: %w", path, err)
	}

	r := traceReport{
		Path:        path,
		Entries:     a.Entries(),
		Entry:       entry,
		Events:      events,
		CountByType: tracefile.CountByType(events),
	}
	if entry == tracefile.TraceEntry {
		// network events are read from the same entry
		trace, err := tracefile.Load(path)
		if err != nil {
			return traceReport{}, err
		}
		r.NetworkEvents = len(trace.NetworkEvents)
	}
	return r, nil
}

func printTraceReport(w io.Writer, r traceReport) {
	fmt.Fprintf(w, "%s (%s)\n", r.Path, r.Entry)

	types := make([]string, 0, len(r.CountByType))
	width := len("type")
	for t := range r.CountByType {
		types = append(types, t)
		if n := runewidth.StringWidth(t); n > width {
			width = n
		}
	}
	sort.Strings(types)

	for _, t := range types {
		printer.Fprintf(w, "  %s  %d\n", runewidth.FillRight(t, width), r.CountByType[t])
	}
	printer.Fprintf(w, "  %s  %d\n", runewidth.FillRight("total", width), len(r.Events))
	if r.Entry == tracefile.TraceEntry {
		printer.Fprintf(w, "  %s  %d\n", runewidth.FillRight("network", width), r.NetworkEvents)
	}
	fmt.Fprintln(w)
}
