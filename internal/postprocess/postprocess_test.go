package postprocess

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/spboyer/journeys/internal/engine"
	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/orchestration"
	"github.com/spboyer/journeys/internal/tracefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.zip")
	require.NoError(t, engine.WriteTraceArchive(path, map[string][]map[string]any{
		tracefile.TraceEntry: {
			{"type": "context-options", "title": "a-chromium"},
			{"type": "before", "callId": "call@1"},
			{"type": "after", "callId": "call@1"},
		},
		tracefile.NetworkEntry: {
			{"type": "resource-snapshot"},
		},
	}))
	return path
}

func TestWrap_PassesPayload(t *testing.T) {
	path := writeTrace(t)
	input := models.JourneyInput{"id": "a"}
	result := models.JourneyResult{RunID: "r1", Result: models.OutcomeSuccess, TraceFilePath: path}

	var got Payload
	fn := Wrap(func(_ context.Context, p Payload) error {
		got = p
		return nil
	})
	require.NoError(t, fn(context.Background(), RunMeta{TraceFilePath: path, Input: input, Result: result}))

	require.Len(t, got.TraceEvents, 3)
	assert.Equal(t, "context-options", got.TraceEvents[0].Type)
	assert.Equal(t, got.TraceEvents, got.NetworkEvents)
	assert.NotNil(t, got.Resources)
	assert.Empty(t, got.Resources)
	assert.Equal(t, input, got.Input)
	assert.Equal(t, result, got.Result)
}

func TestWrap_LoadErrorUnchanged(t *testing.T) {
	loadErr := errors.New("disk gone")
	called := false
	fn := Wrap(func(context.Context, Payload) error {
		called = true
		return nil
	}, WithLoader(func(string) (*tracefile.Trace, error) { return nil, loadErr }))

	err := fn(context.Background(), RunMeta{TraceFilePath: "x"})
	assert.True(t, err == loadErr, "load error must be returned unchanged, got %v", err)
	assert.False(t, called)
}

func TestWrap_HandlerErrorUnchanged(t *testing.T) {
	handlerErr := errors.New("handler failed")
	fn := Wrap(func(context.Context, Payload) error { return handlerErr },
		WithLoader(func(string) (*tracefile.Trace, error) { return &tracefile.Trace{}, nil }))

	err := fn(context.Background(), RunMeta{})
	assert.True(t, err == handlerErr)
}

func TestWrap_MissingTraceEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.zip")
	require.NoError(t, engine.WriteTraceArchive(path, map[string][]map[string]any{}))

	fn := Wrap(func(context.Context, Payload) error { return nil })
	err := fn(context.Background(), RunMeta{TraceFilePath: path})
	assert.ErrorIs(t, err, tracefile.ErrEntryNotFound)
}

func TestWrap_WithOrchestrator(t *testing.T) {
	var seen []string
	cfg := orchestration.Config{
		InputKey: "id",
		Inputs:   []models.JourneyInput{{"id": "a"}, {"id": "b"}},
		Engines:  []models.EngineKey{"engineA"},
		Capture:  orchestration.CaptureConfig{ArtifactsRoot: filepath.Join(t.TempDir(), "artifacts")},
		Journey: func(ctx context.Context, page engine.Page, _ models.JourneyInput, _ orchestration.AnnotateFunc) error {
			return page.Goto(ctx, "https://example.com")
		},
		PostProcess: Wrap(func(_ context.Context, p Payload) error {
			counts := tracefile.CountByType(p.TraceEvents)
			assert.Equal(t, 1, counts["context-options"])
			assert.Equal(t, 1, counts["screencast-frame"])
			seen = append(seen, p.Input["id"])
			return nil
		}),
	}

	_, err := orchestration.NewRunner(engine.NewFakeDriver()).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestChain(t *testing.T) {
	var order []int
	stop := errors.New("stop")
	h := Chain(
		func(context.Context, Payload) error { order = append(order, 1); return nil },
		func(context.Context, Payload) error { order = append(order, 2); return stop },
		func(context.Context, Payload) error { order = append(order, 3); return nil },
	)
	assert.ErrorIs(t, h(context.Background(), Payload{}), stop)
	assert.Equal(t, []int{1, 2}, order)
}

func TestSummarize(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := Summarize(logger)(context.Background(), Payload{
		TraceEvents: []tracefile.TraceEvent{{Type: "before"}, {Type: "after"}, {Type: "before"}},
		Result:      models.JourneyResult{RunID: "r1", EngineKey: models.EngineChromium},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "trace summary")
	assert.Contains(t, out, "run_id=r1")
	assert.Contains(t, out, "events=3")
	assert.Contains(t, out, "type.before=2")
	assert.Contains(t, out, "type.after=1")
}

type fakeConverter struct {
	srcs []string
	err  error
}

func (f *fakeConverter) ToMP4(_ context.Context, src string) (string, error) {
	f.srcs = append(f.srcs, src)
	return src + ".mp4", f.err
}

func TestTranscode(t *testing.T) {
	c := &fakeConverter{}
	h := Transcode(c)

	require.NoError(t, h(context.Background(), Payload{}))
	assert.Empty(t, c.srcs, "runs without a recording are skipped")

	require.NoError(t, h(context.Background(), Payload{Result: models.JourneyResult{RecordingPath: "r.webm"}}))
	assert.Equal(t, []string{"r.webm"}, c.srcs)

	c.err = errors.New("ffmpeg not found")
	assert.ErrorIs(t, h(context.Background(), Payload{Result: models.JourneyResult{RecordingPath: "r.webm"}}), c.err)
}
