package models

import (
	"fmt"
	"time"
)

// Outcome is the discriminant of a JourneyResult.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// EngineKey identifies a browser engine.
type EngineKey string

const (
	EngineChromium EngineKey = "chromium"
	EngineFirefox  EngineKey = "firefox"
	EngineWebKit   EngineKey = "webkit"
)

// KnownEngines lists the engines accepted by ParseEngineKey, in display order.
var KnownEngines = []EngineKey{EngineChromium, EngineFirefox, EngineWebKit}

// ParseEngineKey converts s into one of the known engines.
func ParseEngineKey(s string) (EngineKey, error) {
	for _, k := range KnownEngines {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown engine %q (supported: chromium, firefox, webkit)", s)
}

// JourneyInput is one logical input for a journey. The batch's input key
// selects the field used to name the run folder.
type JourneyInput map[string]string

// Clone returns a copy that shares no state with in.
func (in JourneyInput) Clone() JourneyInput {
	if in == nil {
		return nil
	}
	out := make(JourneyInput, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Annotation is a timestamped checkpoint placed by a journey. Offset is in
// milliseconds since the run started, after calibration.
type Annotation struct {
	Offset  int64  `json:"offset"`
	Message string `json:"message"`
}

// JourneyResult is the record of one (input, engine) run.
type JourneyResult struct {
	RunID           string         `json:"runId"`
	Result          Outcome        `json:"result"`
	TraceFilePath   string         `json:"traceFilePath"`
	Input           JourneyInput   `json:"input"`
	EngineKey       EngineKey      `json:"engineKey"`
	ArtifactsFolder string         `json:"artifactsFolder"`
	RecordingPath   string         `json:"recordingPath,omitempty"`
	Annotations     []Annotation   `json:"annotations"`
	StartedAt       time.Time      `json:"startedAt"`
	DurationMs      int64          `json:"durationMs"`
	FailureReason   *FailureReason `json:"failureReason,omitempty"`
}

// Succeeded reports whether the journey function returned without error.
func (r *JourneyResult) Succeeded() bool {
	return r.Result == OutcomeSuccess
}

// FailureReason describes why a journey failed.
// NOTE: Err is the exact value the journey returned. It does not survive a
// trip through the manifest; only Kind and Message are persisted.
type FailureReason struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (f *FailureReason) Error() string {
	return f.Message
}

func (f *FailureReason) Unwrap() error {
	return f.Err
}
