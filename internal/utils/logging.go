package utils

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/spboyer/journeys/internal/orchestration"
)

// ConfigureLogging installs a text handler on w as the default logger.
// debug lowers the level from info to debug.
func ConfigureLogging(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// ProgressToSlog logs an orchestrator progress event at debug level.
func ProgressToSlog(event orchestration.ProgressEvent) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []any{
		"type", string(event.EventType),
	}

	attrs = addIf(attrs, "input", event.Input)
	attrs = addIf(attrs, "engine", string(event.Engine))
	attrs = addIf(attrs, "run", event.RunNum)
	attrs = addIf(attrs, "total", event.TotalRuns)
	attrs = addIf(attrs, "result", string(event.Result))
	attrs = addIf(attrs, "durationMs", event.DurationMs)

	keys := make([]string, 0, len(event.Details))
	for k := range event.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, event.Details[k])
	}

	slog.Debug("Progress", attrs...)
}

func addIf[T comparable](attrs []any, name string, v T) []any {
	var zero T
	if v != zero {
		attrs = append(attrs, name)
		attrs = append(attrs, v)
	}

	return attrs
}
