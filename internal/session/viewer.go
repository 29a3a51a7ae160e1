package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SessionFile represents a session log file on disk.
type SessionFile struct {
	Path      string
	Name      string
	Size      int64
	ModTime   time.Time
	NumEvents int
}

// ListSessions finds .jsonl session log files in dir.
func ListSessions(dir string) ([]SessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading session directory: %w", err)
	}

	var files []SessionFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), "-session.jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(dir, e.Name())
		n, _ := countLines(path) //nolint:errcheck
		files = append(files, SessionFile{
			Path:      path,
			Name:      e.Name(),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			NumEvents: n,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	return files, nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}

// ReadEvents parses all events from a session log file.
func ReadEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var events []Event
	scanner := bufio.NewScanner(f)
	// Increase buffer for large lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue // skip malformed lines
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	return events, nil
}

// RenderTimeline writes a human-readable session timeline to w.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderTimeline(w io.Writer, events []Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}

	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w, " SESSION TIMELINE")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	start := events[0].Timestamp
	for _, ev := range events {
		elapsed := ev.Timestamp.Sub(start)
		ts := formatDuration(elapsed)

		switch ev.Type {
		case EventSessionStart:
			driver, _ := ev.Data["driver"].(string) //nolint:errcheck
			runs := jsonNumber(ev.Data["run_count"])
			fmt.Fprintf(w, "[%s] 🚀 Session started  driver=%s  engines=%s  runs=%d\n", ts, driver, jsonStrings(ev.Data["engines"]), runs)

		case EventRunStart:
			input, _ := ev.Data["input"].(string)   //nolint:errcheck
			engine, _ := ev.Data["engine"].(string) //nolint:errcheck
			num := jsonNumber(ev.Data["run_num"])
			total := jsonNumber(ev.Data["total_runs"])
			fmt.Fprintf(w, "[%s] ▶  Run %d/%d: %s on %s\n", ts, num, total, input, engine)

		case EventRunComplete:
			input, _ := ev.Data["input"].(string)   //nolint:errcheck
			engine, _ := ev.Data["engine"].(string) //nolint:errcheck
			result, _ := ev.Data["result"].(string) //nolint:errcheck
			dur := jsonNumber(ev.Data["duration_ms"])
			icon := "✓"
			if result != "success" {
				icon = "✗"
			}
			fmt.Fprintf(w, "[%s] %s  Run complete: %s-%s [%s] (%dms)\n", ts, icon, input, engine, result, dur)

		case EventPostProcessComplete:
			input, _ := ev.Data["input"].(string)   //nolint:errcheck
			engine, _ := ev.Data["engine"].(string) //nolint:errcheck
			dur := jsonNumber(ev.Data["duration_ms"])
			fmt.Fprintf(w, "[%s]    Post-processed %s-%s (%dms)\n", ts, input, engine, dur)

		case EventError:
			msg, _ := ev.Data["message"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] ❌ Error: %s\n", ts, msg)

		case EventSessionEnd:
			total := jsonNumber(ev.Data["total_runs"])
			succeeded := jsonNumber(ev.Data["succeeded"])
			failed := jsonNumber(ev.Data["failed"])
			dur := jsonNumber(ev.Data["duration_ms"])
			fmt.Fprintf(w, "[%s] 🏁 Session complete  %d/%d succeeded  %d failed  (%dms)\n",
				ts, succeeded, total, failed, dur)

		default:
			fmt.Fprintf(w, "[%s] %s %v\n", ts, ev.Type, ev.Data)
		}
	}
	fmt.Fprintln(w)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%6dms", d.Milliseconds())
	}
	return fmt.Sprintf("%6.1fs", d.Seconds())
}

// jsonNumber extracts a number from a JSON-decoded value or an in-memory int.
func jsonNumber(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		i, _ := n.Int64() //nolint:errcheck
		return int(i)
	}
	return 0
}

// jsonStrings joins a JSON-decoded string array with commas.
func jsonStrings(v any) string {
	var parts []string
	switch vals := v.(type) {
	case []any:
		for _, e := range vals {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
	case []string:
		parts = vals
	}
	return strings.Join(parts, ",")
}
