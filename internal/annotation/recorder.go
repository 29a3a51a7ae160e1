// Package annotation timestamps named checkpoints within a journey run so they
// can be lined up with the run's recording and trace afterwards.
package annotation

import (
	"log/slog"
	"sync"
	"time"

	"github.com/spboyer/journeys/internal/models"
)

// DefaultCalibration is subtracted from every offset to line annotations up
// with the recording timeline. It was found empirically and may need tuning
// on other machines.
const DefaultCalibration = 200 * time.Millisecond

// Clock returns the current time.
type Clock func() time.Time

// Recorder collects annotations for one run. Offsets may be negative when an
// annotation is placed within the calibration window.
type Recorder struct {
	mu          sync.Mutex
	clock       Clock
	start       time.Time
	calibration time.Duration
	sealed      bool
	entries     []models.Annotation
}

// NewRecorder starts a recorder at clock(). A nil clock uses time.Now.
func NewRecorder(calibration time.Duration, clock Clock) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{
		clock:       clock,
		start:       clock(),
		calibration: calibration,
	}
}

// Start returns the time the run started.
func (r *Recorder) Start() time.Time {
	return r.start
}

// Annotate appends message at the current offset. Calls after Seal are dropped.
func (r *Recorder) Annotate(message string) {
	now := r.clock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		slog.Debug("annotation dropped after journey finished", "message", message)
		return
	}

	offset := now.Sub(r.start) - r.calibration
	r.entries = append(r.entries, models.Annotation{
		Offset:  offset.Milliseconds(),
		Message: message,
	})
}

// Seal stops accepting annotations.
func (r *Recorder) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Annotations returns a copy of the recorded annotations in insertion order.
func (r *Recorder) Annotations() []models.Annotation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Annotation, len(r.entries))
	copy(out, r.entries)
	return out
}
