package tracefile

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Record types found in trace entries.
const (
	TypeContextOptions   = "context-options"
	TypeScreencastFrame  = "screencast-frame"
	TypeBefore           = "before"
	TypeAfter            = "after"
	TypeInput            = "input"
	TypeLog              = "log"
	TypeAction           = "action"
	TypeEvent            = "event"
	TypeResourceSnapshot = "resource-snapshot"
	TypeFrameSnapshot    = "frame-snapshot"
)

// ErrWrongType is returned by a typed accessor called on an event of another type.
var ErrWrongType = errors.New("trace event has a different type")

// TraceEvent is one record of a trace entry. Raw holds the full JSON document.
type TraceEvent struct {
	Type string
	Raw  json.RawMessage
}

// MarshalJSON writes the original document.
func (e TraceEvent) MarshalJSON() ([]byte, error) {
	if len(e.Raw) == 0 {
		return []byte("null"), nil
	}
	return e.Raw, nil
}

// UnmarshalJSON keeps data as the raw document and extracts its type.
func (e *TraceEvent) UnmarshalJSON(data []byte) error {
	ev, err := parseLine(data)
	if err != nil {
		return err
	}
	*e = ev
	return nil
}

// Decode unmarshals the raw record into v.
func (e TraceEvent) Decode(v any) error {
	return json.Unmarshal(e.Raw, v)
}

// IsAction reports whether the event is part of an API call record.
func (e TraceEvent) IsAction() bool {
	switch e.Type {
	case TypeBefore, TypeAfter, TypeInput, TypeLog, TypeAction:
		return true
	}
	return false
}

func (e TraceEvent) decodeAs(v any, types ...string) error {
	for _, t := range types {
		if e.Type == t {
			return e.Decode(v)
		}
	}
	return fmt.Errorf("%w: got %q, want %v", ErrWrongType, e.Type, types)
}

// ContextOptions is the header record describing the browser context.
type ContextOptions struct {
	Version       int            `json:"version"`
	Origin        string         `json:"origin"`
	BrowserName   string         `json:"browserName"`
	Platform      string         `json:"platform"`
	Title         string         `json:"title"`
	WallTime      float64        `json:"wallTime"`
	MonotonicTime float64        `json:"monotonicTime"`
	SDKLanguage   string         `json:"sdkLanguage"`
	Options       map[string]any `json:"options"`
}

// ScreencastFrame references a screenshot stored alongside the trace.
type ScreencastFrame struct {
	PageID    string  `json:"pageId"`
	SHA1      string  `json:"sha1"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Timestamp float64 `json:"timestamp"`
}

// Action covers before, after, input, log and action records. Fields not
// present on a given record type stay zero.
type Action struct {
	Type      string         `json:"type"`
	CallID    string         `json:"callId"`
	StartTime float64        `json:"startTime"`
	EndTime   float64        `json:"endTime"`
	APIName   string         `json:"apiName"`
	Class     string         `json:"class"`
	Method    string         `json:"method"`
	Params    map[string]any `json:"params"`
	Message   string         `json:"message"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Event is a protocol event emitted by the browser.
type Event struct {
	Time   float64        `json:"time"`
	Class  string         `json:"class"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

// ResourceSnapshot is a HAR-like network entry.
type ResourceSnapshot struct {
	Snapshot struct {
		PageRef string `json:"pageref"`
		Request struct {
			Method string `json:"method"`
			URL    string `json:"url"`
		} `json:"request"`
		Response struct {
			Status int `json:"status"`
		} `json:"response"`
	} `json:"snapshot"`
}

// FrameSnapshot is a DOM snapshot of one frame.
type FrameSnapshot struct {
	Snapshot struct {
		CallID       string  `json:"callId"`
		SnapshotName string  `json:"snapshotName"`
		PageID       string  `json:"pageId"`
		FrameID      string  `json:"frameId"`
		FrameURL     string  `json:"frameUrl"`
		Timestamp    float64 `json:"timestamp"`
	} `json:"snapshot"`
}

func (e TraceEvent) ContextOptions() (ContextOptions, error) {
	var v ContextOptions
	err := e.decodeAs(&v, TypeContextOptions)
	return v, err
}

func (e TraceEvent) ScreencastFrame() (ScreencastFrame, error) {
	var v ScreencastFrame
	err := e.decodeAs(&v, TypeScreencastFrame)
	return v, err
}

func (e TraceEvent) Action() (Action, error) {
	var v Action
	err := e.decodeAs(&v, TypeBefore, TypeAfter, TypeInput, TypeLog, TypeAction)
	return v, err
}

func (e TraceEvent) Event() (Event, error) {
	var v Event
	err := e.decodeAs(&v, TypeEvent)
	return v, err
}

func (e TraceEvent) ResourceSnapshot() (ResourceSnapshot, error) {
	var v ResourceSnapshot
	err := e.decodeAs(&v, TypeResourceSnapshot)
	return v, err
}

func (e TraceEvent) FrameSnapshot() (FrameSnapshot, error) {
	var v FrameSnapshot
	err := e.decodeAs(&v, TypeFrameSnapshot)
	return v, err
}
