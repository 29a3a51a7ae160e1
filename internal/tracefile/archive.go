// Package tracefile reads trace archives: zip files whose entries hold
// newline-delimited JSON records.
package tracefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Entry names inside a trace archive.
const (
	TraceEntry   = "trace.trace"
	NetworkEntry = "trace.network"
)

// ErrEntryNotFound is returned when the archive has no entry with the requested name.
var ErrEntryNotFound = errors.New("entry not found in trace archive")

// ParseError reports a line that is not a valid JSON document.
type ParseError struct {
	Entry string
	Line  int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.Entry, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Trace is the decoded content of a trace archive.
type Trace struct {
	TraceEvents []TraceEvent
	// NetworkEvents are read from TraceEntry as well; trace.network is not consulted.
	NetworkEvents []TraceEvent
}

// Load opens the archive at path and parses its trace entry.
func Load(path string) (*Trace, error) {
	a, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer a.Close() //nolint:errcheck

	events, err := a.Events(TraceEntry)
	if err != nil {
		return nil, err
	}
	network, err := a.Events(TraceEntry)
	if err != nil {
		return nil, err
	}
	return &Trace{TraceEvents: events, NetworkEvents: network}, nil
}

// Archive is an open trace archive.
type Archive struct {
	path string
	zr   *zip.ReadCloser
}

// Open opens the zip archive at path.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace archive %s: %w", path, err)
	}
	return &Archive{path: path, zr: zr}, nil
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.zr.Close()
}

// Entries returns the entry names in the archive, sorted.
func (a *Archive) Entries() []string {
	names := make([]string, 0, len(a.zr.File))
	for _, f := range a.zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// ReadEntry returns the raw bytes of the named entry.
func (a *Archive) ReadEntry(name string) ([]byte, error) {
	for _, f := range a.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in %s: %w", name, a.path, err)
		}
		defer rc.Close() //nolint:errcheck

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading %s in %s: %w", name, a.path, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s in %s: %w", name, a.path, ErrEntryNotFound)
}

// Events parses the named entry into events.
func (a *Archive) Events(name string) ([]TraceEvent, error) {
	data, err := a.ReadEntry(name)
	if err != nil {
		return nil, err
	}
	return Parse(name, bytes.NewReader(data))
}

// Parse decodes newline-delimited JSON from r. A leading UTF-8 byte order
// mark is removed and whitespace-only lines are skipped. The first invalid
// line stops parsing with a *ParseError; entry only labels that error.
func Parse(entry string, r io.Reader) ([]TraceEvent, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", entry, err)
	}

	events := []TraceEvent{}
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ev, err := parseLine([]byte(line))
		if err != nil {
			return nil, &ParseError{Entry: entry, Line: i + 1, Err: err}
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseLine(line []byte) (TraceEvent, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(line), &raw); err != nil {
		return TraceEvent{}, err
	}

	var head struct {
		Type string `json:"type"`
	}
	// Non-object documents are kept without a type.
	_ = json.Unmarshal(raw, &head)
	return TraceEvent{Type: head.Type, Raw: raw}, nil
}

// CountByType tallies events by their type.
func CountByType(events []TraceEvent) map[string]int {
	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.Type]++
	}
	return counts
}
