package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/orchestration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressToSlogDebugDisabled(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ProgressToSlog(orchestration.ProgressEvent{EventType: orchestration.EventRunStart})
	assert.Equal(t, 0, buf.Len())
}

func TestProgressToSlogDebugEnabled(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	ProgressToSlog(orchestration.ProgressEvent{
		EventType:  orchestration.EventRunComplete,
		Input:      "A",
		Engine:     models.EngineFirefox,
		RunNum:     2,
		TotalRuns:  4,
		Result:     models.OutcomeFailure,
		DurationMs: 1234,
		Details:    map[string]any{"folder": "/art/A-firefox"},
	})

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "Progress", logEntry["msg"])
	assert.Equal(t, "run_complete", logEntry["type"])
	assert.Equal(t, "A", logEntry["input"])
	assert.Equal(t, "firefox", logEntry["engine"])
	assert.Equal(t, float64(2), logEntry["run"])
	assert.Equal(t, float64(4), logEntry["total"])
	assert.Equal(t, "failure", logEntry["result"])
	assert.Equal(t, float64(1234), logEntry["durationMs"])
	assert.Equal(t, "/art/A-firefox", logEntry["folder"])
}

func TestConfigureLogging(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	var buf bytes.Buffer
	ConfigureLogging(&buf, false)
	slog.Debug("hidden")
	assert.Equal(t, 0, buf.Len())

	ConfigureLogging(&buf, true)
	slog.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestAddIf(t *testing.T) {
	attrs := []any{"existing", "value"}

	result := addIf(attrs, "missing", 0)
	assert.Equal(t, attrs, result)

	result = addIf(attrs, "number", 7)
	assert.Equal(t, []any{"existing", "value", "number", 7}, result)
}
