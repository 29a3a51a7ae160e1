package reporting

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spboyer/journeys/internal/metrics"
	"github.com/spboyer/journeys/internal/models"
)

type commentOptions struct {
	title    string
	inputKey string
}

// CommentOption configures FormatGitHubComment.
type CommentOption func(*commentOptions)

// WithTitle names the batch in the comment header.
func WithTitle(title string) CommentOption {
	return func(o *commentOptions) { o.title = title }
}

// WithInputKey enables the section listing inputs whose outcome differs
// between engines.
func WithInputKey(key string) CommentOption {
	return func(o *commentOptions) { o.inputKey = key }
}

// formatDuration formats a duration in a consistent, human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatGitHubComment formats a batch of journey results as a markdown comment for GitHub PRs.
func FormatGitHubComment(results []models.JourneyResult, opts ...CommentOption) string {
	o := commentOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	var b strings.Builder
	digest := models.Summarize(results)
	duration := time.Duration(digest.DurationMs) * time.Millisecond

	if o.title != "" {
		fmt.Fprintf(&b, "## 🧭 Journey Results: %s\n\n", o.title)
	} else {
		b.WriteString("## 🧭 Journey Results\n\n")
	}

	statusIcon := "✅ Passed"
	if digest.Failed > 0 {
		statusIcon = "❌ Failed"
	}
	fmt.Fprintf(&b, "**Status:** %s | **Runs:** %d | **Duration:** %s\n\n",
		statusIcon, digest.Total, formatDuration(duration))
	fmt.Fprintf(&b, "- **Runs:** %d total, %d succeeded, %d failed\n", digest.Total, digest.Succeeded, digest.Failed)
	fmt.Fprintf(&b, "- **Success Rate:** %.1f%%\n\n", digest.SuccessRate()*100)

	if len(results) > 0 {
		b.WriteString("### Engines\n\n")
		b.WriteString("| Engine | Runs | Pass Rate | Mean | 95% CI |\n")
		b.WriteString("|--------|------|-----------|------|--------|\n")
		for _, s := range metrics.ComputeEngineStats(results) {
			fmt.Fprintf(&b, "| %s | %d | %.0f%% | %.0fms | %.0f-%.0fms |\n",
				s.Engine, s.Runs, s.PassRate*100, s.MeanMs, s.CI95Low, s.CI95High)
		}
		b.WriteString("\n")
	}

	if o.inputKey != "" {
		if flaky := metrics.DisagreeingInputs(results, o.inputKey); len(flaky) > 0 {
			b.WriteString("### ⚠️ Engine Disagreements\n\n")
			b.WriteString("These inputs passed on some engines and failed on others:\n\n")
			for _, v := range flaky {
				fmt.Fprintf(&b, "- **%s**\n", v)
			}
			b.WriteString("\n")
		}
	}

	if digest.Failed > 0 {
		b.WriteString("### Failed Runs\n\n")
		for i := range results {
			r := &results[i]
			if r.Succeeded() {
				continue
			}
			fmt.Fprintf(&b, "#### %s\n\n", filepath.Base(r.ArtifactsFolder))
			if r.FailureReason != nil {
				fmt.Fprintf(&b, "- **%s:** %s\n", r.FailureReason.Kind, r.FailureReason.Message)
			}
			if r.TraceFilePath != "" {
				fmt.Fprintf(&b, "- **Trace:** `%s`\n", r.TraceFilePath)
			}
			for _, a := range r.Annotations {
				fmt.Fprintf(&b, "- `%dms` %s\n", a.Offset, a.Message)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
