package session

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spboyer/journeys/internal/orchestration"
)

// Logger records session events.
type Logger interface {
	Log(event Event) error
	Close() error
}

// JSONLogger appends events to a writer, one JSON document per line.
// After the first failed write every later Log returns that error without
// touching the writer again.
type JSONLogger struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	enc    *json.Encoder
	path   string
	events int
	err    error
}

// NewWriterLogger logs to w. Close closes w when it is an io.Closer.
func NewWriterLogger(w io.Writer) *JSONLogger {
	l := &JSONLogger{w: w, enc: json.NewEncoder(w)}
	if c, ok := w.(io.Closer); ok {
		l.closer = c
	}
	return l
}

// NewJSONLogger appends to the file at path, creating it and its parent
// directories as needed.
func NewJSONLogger(path string) (*JSONLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating session log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening session log: %w", err)
	}
	l := NewWriterLogger(f)
	l.path = path
	return l, nil
}

// Open returns a logger for target. An existing directory, or a target
// ending in a path separator, gets a new timestamped file from DefaultLogPath.
func Open(target string) (*JSONLogger, error) {
	if strings.HasSuffix(target, string(filepath.Separator)) || strings.HasSuffix(target, "/") {
		return NewJSONLogger(DefaultLogPath(target))
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return NewJSONLogger(DefaultLogPath(target))
	}
	return NewJSONLogger(target)
}

func (l *JSONLogger) Log(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	if err := l.enc.Encode(event); err != nil {
		l.err = fmt.Errorf("writing session event: %w", err)
		return l.err
	}
	l.events++
	return nil
}

// Events returns the number of events written so far.
func (l *JSONLogger) Events() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events
}

func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Path is empty for loggers built with NewWriterLogger.
func (l *JSONLogger) Path() string {
	return l.path
}

// NopLogger discards all events.
type NopLogger struct{}

func (NopLogger) Log(Event) error { return nil }
func (NopLogger) Close() error    { return nil }

// DefaultLogPath returns a timestamped session log path inside dir.
func DefaultLogPath(dir string) string {
	ts := time.Now().UTC().Format("20060102T150405Z")
	return filepath.Join(dir, ts+"-session.jsonl")
}

// Listener logs orchestrator progress to l. Write failures are logged and
// otherwise ignored.
func Listener(l Logger) orchestration.ProgressListener {
	return func(p orchestration.ProgressEvent) {
		ev, ok := FromProgress(p)
		if !ok {
			return
		}
		if err := l.Log(ev); err != nil {
			slog.Warn("writing session event failed", "type", ev.Type, "error", err)
		}
	}
}
