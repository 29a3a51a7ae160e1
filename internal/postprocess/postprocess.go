// Package postprocess adapts trace-aware handlers to the orchestrator's
// post-processing callback.
package postprocess

import (
	"context"
	"log/slog"
	"sort"

	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/orchestration"
	"github.com/spboyer/journeys/internal/tracefile"
)

// RunMeta is what the orchestrator hands over for each run.
type RunMeta = orchestration.RunMeta

// Resource is reserved for files referenced by a trace. No resources are
// extracted yet, so Payload.Resources is always empty.
type Resource struct {
	Name string
	Data []byte
}

// Payload is what a Handler receives for one run.
type Payload struct {
	TraceEvents   []tracefile.TraceEvent
	NetworkEvents []tracefile.TraceEvent
	Resources     []Resource
	Input         models.JourneyInput
	Result        models.JourneyResult
}

// Handler consumes one run's payload.
type Handler func(ctx context.Context, p Payload) error

// Loader reads a trace archive.
type Loader func(path string) (*tracefile.Trace, error)

type options struct {
	load Loader
}

// Option configures Wrap.
type Option func(*options)

// WithLoader replaces tracefile.Load.
func WithLoader(l Loader) Option {
	return func(o *options) {
		o.load = l
	}
}

// Wrap returns a callback that loads each run's trace and passes it to
// handler. Load and handler errors are returned as is.
func Wrap(handler Handler, opts ...Option) orchestration.PostProcessFunc {
	o := options{load: tracefile.Load}
	for _, opt := range opts {
		opt(&o)
	}

	return func(ctx context.Context, meta RunMeta) error {
		tr, err := o.load(meta.TraceFilePath)
		if err != nil {
			return err
		}
		return handler(ctx, Payload{
			TraceEvents:   tr.TraceEvents,
			NetworkEvents: tr.NetworkEvents,
			Resources:     []Resource{},
			Input:         meta.Input,
			Result:        meta.Result,
		})
	}
}

// Chain runs handlers in order and stops at the first error.
func Chain(handlers ...Handler) Handler {
	return func(ctx context.Context, p Payload) error {
		for _, h := range handlers {
			if err := h(ctx, p); err != nil {
				return err
			}
		}
		return nil
	}
}

// Summarize logs per-type event counts for the run.
func Summarize(logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(_ context.Context, p Payload) error {
		counts := tracefile.CountByType(p.TraceEvents)
		types := make([]string, 0, len(counts))
		for t := range counts {
			types = append(types, t)
		}
		sort.Strings(types)

		attrs := []any{
			"run_id", p.Result.RunID,
			"engine", p.Result.EngineKey,
			"result", p.Result.Result,
			"events", len(p.TraceEvents),
		}
		for _, t := range types {
			attrs = append(attrs, "type."+t, counts[t])
		}
		logger.Info("trace summary", attrs...)
		return nil
	}
}

// Converter turns a recording into another format and returns the new path.
type Converter interface {
	ToMP4(ctx context.Context, src string) (string, error)
}

// Transcode converts each run's recording with c. Runs without a recording
// are skipped.
func Transcode(c Converter) Handler {
	return func(ctx context.Context, p Payload) error {
		if p.Result.RecordingPath == "" {
			slog.Debug("no recording to transcode", "run_id", p.Result.RunID)
			return nil
		}
		dst, err := c.ToMP4(ctx, p.Result.RecordingPath)
		if err != nil {
			return err
		}
		slog.Info("recording transcoded", "run_id", p.Result.RunID, "path", dst)
		return nil
	}
}
