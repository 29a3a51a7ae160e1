package orchestration

import "github.com/spboyer/journeys/internal/models"

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventBatchStart          EventType = "batch_start"
	EventBatchComplete       EventType = "batch_complete"
	EventRunStart            EventType = "run_start"
	EventRunComplete         EventType = "run_complete"
	EventPostProcessStart    EventType = "postprocess_start"
	EventPostProcessComplete EventType = "postprocess_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType EventType
	// Input is the input key value of the run.
	Input      string
	Engine     models.EngineKey
	RunNum     int
	TotalRuns  int
	Result     models.Outcome
	DurationMs int64
	Details    map[string]any
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}
