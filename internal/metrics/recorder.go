// Package metrics records batch measurements as Prometheus metrics and
// computes duration statistics over journey results.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/spboyer/journeys/internal/models"
)

const namespace = "journeys"

// Recorder owns a private registry so that batches in the same process do
// not share counters.
type Recorder struct {
	reg      *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	launches *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Journey runs by engine and result",
			},
			[]string{"engine", "result"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Time spent in the journey function",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
			},
			[]string{"engine"},
		),
		launches: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "browser_launches_total",
				Help:      "Browser processes launched",
			},
			[]string{"engine"},
		),
	}
}

// BrowserLaunched counts one launch of engine.
func (r *Recorder) BrowserLaunched(engine models.EngineKey) {
	r.launches.WithLabelValues(string(engine)).Inc()
}

// RunFinished counts one run and observes its duration.
func (r *Recorder) RunFinished(engine models.EngineKey, outcome models.Outcome, d time.Duration) {
	r.runs.WithLabelValues(string(engine), string(outcome)).Inc()
	r.duration.WithLabelValues(string(engine)).Observe(d.Seconds())
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteTextfile writes all metrics in the text exposition format, suitable
// for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
