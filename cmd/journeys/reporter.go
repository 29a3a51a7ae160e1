package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/journeys/internal/metrics"
	"github.com/spboyer/journeys/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups large counts for display.
var printer = message.NewPrinter(language.English)

// formatDuration formats a duration in a consistent, human-readable way.
// This ensures stable output regardless of Go version changes.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// pad fills s with spaces to width terminal columns.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func printSummary(w io.Writer, results []models.JourneyResult, inputKey string) {
	fmt.Fprintln(w, "="+strings.Repeat("=", 50))
	fmt.Fprintln(w, " JOURNEY RESULTS")
	fmt.Fprintln(w, "="+strings.Repeat("=", 50))
	fmt.Fprintln(w)

	digest := models.Summarize(results)
	duration := time.Duration(digest.DurationMs) * time.Millisecond

	printer.Fprintf(w, "Total Runs:     %d\n", digest.Total)
	printer.Fprintf(w, "Succeeded:      %d\n", digest.Succeeded)
	printer.Fprintf(w, "Failed:         %d\n", digest.Failed)
	fmt.Fprintf(w, "Success Rate:   %.1f%%\n", digest.SuccessRate()*100)
	fmt.Fprintf(w, "Duration:       %s\n", formatDuration(duration))
	fmt.Fprintln(w)

	if len(results) == 0 {
		return
	}

	nameWidth := len("Run")
	for i := range results {
		if n := runewidth.StringWidth(runName(&results[i])); n > nameWidth {
			nameWidth = n
		}
	}

	fmt.Fprintf(w, "%s  %-8s  %s\n", pad("Run", nameWidth), "Result", "Duration")
	fmt.Fprintln(w, strings.Repeat("─", nameWidth+22))
	for i := range results {
		r := &results[i]
		fmt.Fprintf(w, "%s  %-8s  %s\n", pad(runName(r), nameWidth), r.Result,
			formatDuration(time.Duration(r.DurationMs)*time.Millisecond))
		if r.FailureReason != nil {
			fmt.Fprintf(w, "%s  └ %s: %s\n", pad("", nameWidth), r.FailureReason.Kind, r.FailureReason.Message)
		}
	}
	fmt.Fprintln(w)

	stats := metrics.ComputeEngineStats(results)
	if len(stats) > 1 {
		fmt.Fprintf(w, "%s  %-9s  %s\n", pad("Engine", 10), "Pass Rate", "Mean")
		for _, s := range stats {
			fmt.Fprintf(w, "%s  %-9s  %s\n", pad(string(s.Engine), 10),
				fmt.Sprintf("%.0f%%", s.PassRate*100),
				formatDuration(time.Duration(s.MeanMs)*time.Millisecond))
		}
		fmt.Fprintln(w)
	}

	if inputKey != "" {
		if flaky := metrics.DisagreeingInputs(results, inputKey); len(flaky) > 0 {
			fmt.Fprintf(w, "Engines disagree on: %s\n\n", strings.Join(flaky, ", "))
		}
	}
}

func runName(r *models.JourneyResult) string {
	if r.ArtifactsFolder != "" {
		return filepath.Base(r.ArtifactsFolder)
	}
	return r.RunID
}
