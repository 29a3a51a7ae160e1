package session

import (
	"time"

	"github.com/spboyer/journeys/internal/orchestration"
)

// EventType identifies the kind of session event.
type EventType string

const (
	EventSessionStart        EventType = "session_start"
	EventSessionEnd          EventType = "session_complete"
	EventRunStart            EventType = "run_start"
	EventRunComplete         EventType = "run_complete"
	EventPostProcessComplete EventType = "postprocess_complete"
	EventError               EventType = "error"
)

// Event is a single timestamped entry in a session log.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(t EventType, data map[string]any) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Type:      t,
		Data:      data,
	}
}

// SessionStartData returns event data for a session start.
func SessionStartData(specPath, driver string, engines []string, runCount int) map[string]any {
	return map[string]any{
		"spec_path": specPath,
		"driver":    driver,
		"engines":   engines,
		"run_count": runCount,
	}
}

// SessionCompleteData returns event data for a session end.
func SessionCompleteData(total, succeeded, failed int, durationMs int64) map[string]any {
	return map[string]any{
		"total_runs":  total,
		"succeeded":   succeeded,
		"failed":      failed,
		"duration_ms": durationMs,
	}
}

// RunData returns event data for a run start or completion. result is empty
// for a start.
func RunData(input, engine string, runNum, totalRuns int, result string, durationMs int64) map[string]any {
	d := map[string]any{
		"input":      input,
		"engine":     engine,
		"run_num":    runNum,
		"total_runs": totalRuns,
	}
	if result != "" {
		d["result"] = result
		d["duration_ms"] = durationMs
	}
	return d
}

// ErrorData returns event data for an error.
func ErrorData(message string) map[string]any {
	return map[string]any{
		"message": message,
	}
}

// FromProgress converts an orchestrator progress event. Batch start and
// post-processing start have no session counterpart and report false.
func FromProgress(p orchestration.ProgressEvent) (Event, bool) {
	switch p.EventType {
	case orchestration.EventRunStart:
		return NewEvent(EventRunStart, RunData(p.Input, string(p.Engine), p.RunNum, p.TotalRuns, "", 0)), true
	case orchestration.EventRunComplete:
		return NewEvent(EventRunComplete, RunData(p.Input, string(p.Engine), p.RunNum, p.TotalRuns, string(p.Result), p.DurationMs)), true
	case orchestration.EventPostProcessComplete:
		return NewEvent(EventPostProcessComplete, RunData(p.Input, string(p.Engine), p.RunNum, p.TotalRuns, string(p.Result), p.DurationMs)), true
	}
	return Event{}, false
}
