package orchestration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spboyer/journeys/internal/artifacts"
	"github.com/spboyer/journeys/internal/engine"
	"github.com/spboyer/journeys/internal/hooks"
	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/tracefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func noop(context.Context, engine.Page, models.JourneyInput, AnnotateFunc) error {
	return nil
}

func inputs(ids ...string) []models.JourneyInput {
	out := make([]models.JourneyInput, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.JourneyInput{"id": id})
	}
	return out
}

func baseConfig(t *testing.T, journey JourneyFunc) Config {
	t.Helper()
	return Config{
		Name:     "test",
		InputKey: "id",
		Inputs:   inputs("a"),
		Engines:  []models.EngineKey{"engineA"},
		Capture:  CaptureConfig{ArtifactsRoot: filepath.Join(t.TempDir(), "artifacts")},
		Journey:  journey,
	}
}

func TestRun_SingleSuccess(t *testing.T) {
	cfg := baseConfig(t, noop)
	d := engine.NewFakeDriver()

	results, err := NewRunner(d).Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, models.OutcomeSuccess, res.Result)
	assert.Nil(t, res.FailureReason)
	assert.Equal(t, filepath.Join(cfg.Capture.ArtifactsRoot, "a-engineA", "trace.zip"), res.TraceFilePath)
	assert.FileExists(t, res.TraceFilePath)
	assert.Empty(t, res.RecordingPath)
	assert.NotEmpty(t, res.RunID)

	manifest, err := artifacts.ReadManifest(artifacts.ManifestFile(cfg.Capture.ArtifactsRoot))
	require.NoError(t, err)
	require.Len(t, manifest, 1)
	assert.Equal(t, models.OutcomeSuccess, manifest[0].Result)
	assert.Equal(t, res.RunID, manifest[0].RunID)

	tr, err := tracefile.Load(res.TraceFilePath)
	require.NoError(t, err)
	require.NotEmpty(t, tr.TraceEvents)
	co, err := tr.TraceEvents[0].ContextOptions()
	require.NoError(t, err)
	assert.Equal(t, "a-engineA", co.Title)
	assert.Equal(t, true, co.Options["screenshots"])
	assert.Equal(t, true, co.Options["snapshots"])
}

func TestRun_ManifestMatchesReturnedResults(t *testing.T) {
	cfg := baseConfig(t, func(_ context.Context, _ engine.Page, in models.JourneyInput, annotate AnnotateFunc) error {
		annotate("loaded " + in["id"])
		if in["id"] == "b" {
			return errors.New("boom")
		}
		return nil
	})
	cfg.Inputs = inputs("a", "b")
	cfg.Engines = []models.EngineKey{"engineA", "engineB"}

	results, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 4)

	manifest, err := artifacts.ReadManifest(artifacts.ManifestFile(cfg.Capture.ArtifactsRoot))
	require.NoError(t, err)

	// Err is not persisted; everything else must survive the manifest.
	want := make([]models.JourneyResult, len(results))
	for i, r := range results {
		if r.FailureReason != nil {
			fr := *r.FailureReason
			fr.Err = nil
			r.FailureReason = &fr
		}
		want[i] = r
	}
	assert.Equal(t, want, manifest)
	assert.Equal(t, models.OutcomeFailure, manifest[2].Result)
	assert.Equal(t, "boom", manifest[2].FailureReason.Message)
	assert.Equal(t, time.UTC, results[0].StartedAt.Location())
}

func TestRun_NestedOrderAndCount(t *testing.T) {
	cfg := baseConfig(t, noop)
	cfg.Inputs = inputs("A", "B")
	cfg.Engines = []models.EngineKey{"X", "Y"}
	d := engine.NewFakeDriver()

	results, err := NewRunner(d).Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, len(cfg.Inputs)*len(cfg.Engines))

	type pair struct {
		input  string
		engine models.EngineKey
	}
	var got []pair
	for _, r := range results {
		got = append(got, pair{r.Input["id"], r.EngineKey})
	}
	assert.Equal(t, []pair{{"A", "X"}, {"A", "Y"}, {"B", "X"}, {"B", "Y"}}, got)

	var pages []string
	for _, c := range d.Calls() {
		if c == "new-page:X" || c == "new-page:Y" {
			pages = append(pages, c)
		}
	}
	assert.Equal(t, []string{"new-page:X", "new-page:Y", "new-page:X", "new-page:Y"}, pages)

	assert.Equal(t, 1, d.Count("launch:X"))
	assert.Equal(t, 1, d.Count("launch:Y"))
	assert.Equal(t, 1, d.Count("browser.close:X"))
	assert.Equal(t, 1, d.Count("browser.close:Y"))
	assert.Equal(t, 4, d.Count("tracing.stop:X")+d.Count("tracing.stop:Y"))
}

func TestRun_FailureIsRecordedAndBatchContinues(t *testing.T) {
	boom := errors.New("boom")
	var ran []string
	journey := func(_ context.Context, _ engine.Page, in models.JourneyInput, _ AnnotateFunc) error {
		ran = append(ran, in["id"])
		if in["id"] == "a" {
			return boom
		}
		return nil
	}
	cfg := baseConfig(t, journey)
	cfg.Inputs = inputs("a", "b")

	results, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"a", "b"}, ran)

	failed := results[0]
	assert.Equal(t, models.OutcomeFailure, failed.Result)
	require.NotNil(t, failed.FailureReason)
	assert.True(t, failed.FailureReason.Err == boom, "failure must carry the exact error value")
	assert.ErrorIs(t, failed.FailureReason, boom)
	assert.Equal(t, "boom", failed.FailureReason.Message)
	assert.Equal(t, string(KindJourney), failed.FailureReason.Kind)
	assert.FileExists(t, failed.TraceFilePath)

	assert.Equal(t, models.OutcomeSuccess, results[1].Result)

	manifest, err := artifacts.ReadManifest(artifacts.ManifestFile(cfg.Capture.ArtifactsRoot))
	require.NoError(t, err)
	require.Len(t, manifest, 2)
	assert.Equal(t, models.OutcomeFailure, manifest[0].Result)
	assert.Equal(t, "boom", manifest[0].FailureReason.Message)
}

func TestRun_PanicIsRecordedAsFailure(t *testing.T) {
	journey := func(context.Context, engine.Page, models.JourneyInput, AnnotateFunc) error {
		panic("exploded")
	}
	results, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), baseConfig(t, journey))
	require.NoError(t, err)
	require.Len(t, results, 1)

	var pe *PanicError
	require.ErrorAs(t, results[0].FailureReason.Err, &pe)
	assert.Equal(t, "exploded", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestRun_AnnotationCalibration(t *testing.T) {
	tests := []struct {
		name        string
		calibration *time.Duration
		want        int64
	}{
		{name: "default offset", want: 800},
		{name: "zero offset", calibration: new(time.Duration), want: 1000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clock := newFakeClock()
			journey := func(_ context.Context, _ engine.Page, _ models.JourneyInput, annotate AnnotateFunc) error {
				clock.Advance(1000 * time.Millisecond)
				annotate("loaded")
				return nil
			}
			cfg := baseConfig(t, journey)
			cfg.Capture.CalibrationOffset = tc.calibration

			results, err := NewRunner(engine.NewFakeDriver(), WithClock(clock.Now)).Run(context.Background(), cfg)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, []models.Annotation{{Offset: tc.want, Message: "loaded"}}, results[0].Annotations)
			assert.Equal(t, int64(1000), results[0].DurationMs)
		})
	}
}

func TestRun_LateAnnotationsAreDropped(t *testing.T) {
	var saved AnnotateFunc
	journey := func(_ context.Context, _ engine.Page, _ models.JourneyInput, annotate AnnotateFunc) error {
		annotate("inside")
		saved = annotate
		return nil
	}
	results, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), baseConfig(t, journey))
	require.NoError(t, err)

	saved("outside")
	require.Len(t, results[0].Annotations, 1)
	assert.Equal(t, "inside", results[0].Annotations[0].Message)
}

func TestRun_RecordVideo(t *testing.T) {
	cfg := baseConfig(t, noop)
	cfg.Capture.RecordVideo = true

	results, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), cfg)
	require.NoError(t, err)
	want := filepath.Join(cfg.Capture.ArtifactsRoot, "a-engineA", "recording.webm")
	assert.Equal(t, want, results[0].RecordingPath)
	assert.FileExists(t, want)
}

func TestRun_ResetsArtifactsRoot(t *testing.T) {
	cfg := baseConfig(t, noop)
	require.NoError(t, os.MkdirAll(cfg.Capture.ArtifactsRoot, 0o755))
	stale := filepath.Join(cfg.Capture.ArtifactsRoot, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))

	_, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
}

func TestRun_BatchesDoNotShareBrowsers(t *testing.T) {
	d := engine.NewFakeDriver()
	r := NewRunner(d)

	_, err := r.Run(context.Background(), baseConfig(t, noop))
	require.NoError(t, err)
	_, err = r.Run(context.Background(), baseConfig(t, noop))
	require.NoError(t, err)

	assert.Equal(t, 2, d.Count("launch:engineA"))
	assert.Equal(t, 2, d.Count("browser.close:engineA"))
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no journey", mutate: func(c *Config) { c.Journey = nil }},
		{name: "no input key", mutate: func(c *Config) { c.InputKey = "" }},
		{name: "no inputs", mutate: func(c *Config) { c.Inputs = nil }},
		{name: "no engines", mutate: func(c *Config) { c.Engines = nil }},
		{name: "duplicate engine", mutate: func(c *Config) { c.Engines = []models.EngineKey{"x", "x"} }},
		{name: "input without key", mutate: func(c *Config) { c.Inputs = []models.JourneyInput{{"other": "v"}} }},
		{name: "input with separator", mutate: func(c *Config) { c.Inputs = inputs("a/b") }},
		{name: "duplicate input value", mutate: func(c *Config) { c.Inputs = inputs("a", "b", "a") }},
		{name: "negative calibration", mutate: func(c *Config) {
			d := -time.Millisecond
			c.Capture.CalibrationOffset = &d
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig(t, noop)
			tc.mutate(&cfg)
			d := engine.NewFakeDriver()

			_, err := NewRunner(d).Run(context.Background(), cfg)
			require.Error(t, err)
			assert.Equal(t, KindConfig, KindOf(err))
			assert.Empty(t, d.Calls())
			assert.NoDirExists(t, cfg.Capture.ArtifactsRoot)
		})
	}
}

func TestRun_LaunchFailureIsFatal(t *testing.T) {
	launchErr := errors.New("executable missing")
	d := &engine.FakeDriver{LaunchErr: map[models.EngineKey]error{"Y": launchErr}}
	cfg := baseConfig(t, noop)
	cfg.Engines = []models.EngineKey{"X", "Y"}
	cfg.Inputs = inputs("a", "b")

	results, err := NewRunner(d).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, launchErr)
	assert.Equal(t, KindLaunch, KindOf(err))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, models.EngineKey("Y"), e.Engine)

	assert.Len(t, results, 1, "runs before the failure are returned")
	assert.Equal(t, 1, d.Count("browser.close:X"))
	assert.NoFileExists(t, artifacts.ManifestFile(cfg.Capture.ArtifactsRoot))
}

func TestRun_ContextFailureClosesBrowserOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := engine.NewMockDriver(ctrl)
	br := engine.NewMockBrowser(ctrl)
	ctxErr := errors.New("context refused")

	drv.EXPECT().Launch(gomock.Any(), models.EngineKey("engineA"), gomock.Any()).Return(br, nil).Times(1)
	br.EXPECT().NewContext(gomock.Any(), gomock.Any()).Return(nil, ctxErr)
	br.EXPECT().Close(gomock.Any()).Return(nil).Times(1)

	_, err := NewRunner(drv).Run(context.Background(), baseConfig(t, noop))
	require.Error(t, err)
	assert.ErrorIs(t, err, ctxErr)
	assert.Equal(t, KindEngine, KindOf(err))
}

func TestRun_TracingStartFailureClosesContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := engine.NewMockDriver(ctrl)
	br := engine.NewMockBrowser(ctrl)
	bctx := engine.NewMockBrowserContext(ctrl)
	tr := engine.NewMockTracing(ctrl)
	startErr := errors.New("tracing busy")

	drv.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Return(br, nil)
	br.EXPECT().NewContext(gomock.Any(), gomock.Any()).Return(bctx, nil)
	bctx.EXPECT().Tracing().Return(tr)
	tr.EXPECT().Start(gomock.Any(), engine.TracingOptions{Title: "a-engineA", Screenshots: true, Snapshots: true}).Return(startErr)
	bctx.EXPECT().Close(gomock.Any()).Return(nil).Times(1)
	br.EXPECT().Close(gomock.Any()).Return(nil).Times(1)

	_, err := NewRunner(drv).Run(context.Background(), baseConfig(t, noop))
	assert.ErrorIs(t, err, startErr)
}

func TestRun_FinalizationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv := engine.NewMockDriver(ctrl)
	br := engine.NewMockBrowser(ctrl)
	bctx := engine.NewMockBrowserContext(ctrl)
	tr := engine.NewMockTracing(ctrl)
	page := engine.NewMockPage(ctrl)
	video := engine.NewMockVideo(ctrl)

	cfg := baseConfig(t, func(context.Context, engine.Page, models.JourneyInput, AnnotateFunc) error {
		return errors.New("journey failed")
	})
	cfg.Capture.RecordVideo = true
	dir := filepath.Join(cfg.Capture.ArtifactsRoot, "a-engineA")

	drv.EXPECT().Launch(gomock.Any(), gomock.Any(), gomock.Any()).Return(br, nil)
	br.EXPECT().NewContext(gomock.Any(), engine.ContextOptions{RecordVideoDir: dir}).Return(bctx, nil)
	bctx.EXPECT().Tracing().Return(tr)
	tr.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	bctx.EXPECT().NewPage(gomock.Any()).Return(page, nil)
	gomock.InOrder(
		page.EXPECT().Screenshot(gomock.Any(), "").Return([]byte("png"), nil),
		tr.EXPECT().Stop(gomock.Any(), filepath.Join(dir, "trace.zip")).Return(nil),
		page.EXPECT().Video().Return(video),
		page.EXPECT().Close(gomock.Any()).Return(nil),
		video.EXPECT().SaveAs(gomock.Any(), filepath.Join(dir, "recording.webm")).Return(nil),
		bctx.EXPECT().Close(gomock.Any()).Return(nil),
		br.EXPECT().Close(gomock.Any()).Return(nil),
	)

	results, err := NewRunner(drv).Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.OutcomeFailure, results[0].Result)
	assert.Equal(t, filepath.Join(dir, "recording.webm"), results[0].RecordingPath)
}

func TestRun_PostProcessAfterAllRunsInOrder(t *testing.T) {
	var events []string
	cfg := baseConfig(t, noop)
	cfg.Inputs = inputs("a", "b")
	cfg.Engines = []models.EngineKey{"X", "Y"}
	cfg.PostProcess = func(_ context.Context, meta RunMeta) error {
		events = append(events, "post:"+meta.Input["id"]+"-"+string(meta.Result.EngineKey))
		assert.Equal(t, meta.Result.TraceFilePath, meta.TraceFilePath)
		assert.FileExists(t, artifacts.ManifestFile(cfg.Capture.ArtifactsRoot))
		return nil
	}

	r := NewRunner(engine.NewFakeDriver())
	r.OnProgress(func(ev ProgressEvent) {
		if ev.EventType == EventRunComplete {
			events = append(events, "run:"+ev.Input+"-"+string(ev.Engine))
		}
	})
	_, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"run:a-X", "run:a-Y", "run:b-X", "run:b-Y",
		"post:a-X", "post:a-Y", "post:b-X", "post:b-Y",
	}, events)
}

func TestRun_PostProcessErrorPropagates(t *testing.T) {
	postErr := errors.New("handler failed")
	calls := 0
	cfg := baseConfig(t, noop)
	cfg.Inputs = inputs("a", "b")
	cfg.PostProcess = func(context.Context, RunMeta) error {
		calls++
		return postErr
	}

	_, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), cfg)
	assert.ErrorIs(t, err, postErr)
	assert.Equal(t, KindPostProcess, KindOf(err))
	assert.Equal(t, 1, calls)
}

func TestRun_PostProcessParseErrorKind(t *testing.T) {
	cfg := baseConfig(t, noop)
	cfg.PostProcess = func(context.Context, RunMeta) error {
		return &tracefile.ParseError{Entry: tracefile.TraceEntry, Line: 1, Err: errors.New("bad")}
	}
	_, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), cfg)
	assert.Equal(t, KindParse, KindOf(err))
}

func TestRun_ProgressEvents(t *testing.T) {
	var types []EventType
	cfg := baseConfig(t, noop)
	cfg.PostProcess = func(context.Context, RunMeta) error { return nil }

	r := NewRunner(engine.NewFakeDriver())
	r.OnProgress(func(ev ProgressEvent) { types = append(types, ev.EventType) })
	_, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []EventType{
		EventBatchStart, EventRunStart, EventRunComplete,
		EventPostProcessStart, EventPostProcessComplete, EventBatchComplete,
	}, types)
}

type recordingSink struct {
	launches map[models.EngineKey]int
	outcomes []models.Outcome
}

func (s *recordingSink) BrowserLaunched(e models.EngineKey) {
	if s.launches == nil {
		s.launches = map[models.EngineKey]int{}
	}
	s.launches[e]++
}

func (s *recordingSink) RunFinished(_ models.EngineKey, o models.Outcome, _ time.Duration) {
	s.outcomes = append(s.outcomes, o)
}

func TestRun_Metrics(t *testing.T) {
	sink := &recordingSink{}
	cfg := baseConfig(t, func(_ context.Context, _ engine.Page, in models.JourneyInput, _ AnnotateFunc) error {
		if in["id"] == "b" {
			return errors.New("nope")
		}
		return nil
	})
	cfg.Inputs = inputs("a", "b")

	_, err := NewRunner(engine.NewFakeDriver(), WithMetrics(sink)).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, map[models.EngineKey]int{"engineA": 1}, sink.launches)
	assert.Equal(t, []models.Outcome{models.OutcomeSuccess, models.OutcomeFailure}, sink.outcomes)
}

func TestRun_RunIDs(t *testing.T) {
	n := 0
	next := func() string {
		n++
		return "run-" + string(rune('0'+n))
	}
	cfg := baseConfig(t, noop)
	cfg.Inputs = inputs("a", "b")

	results, err := NewRunner(engine.NewFakeDriver(), WithRunIDs(next)).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "run-1", results[0].RunID)
	assert.Equal(t, "run-2", results[1].RunID)
}

func TestRun_BeforeRunHookFailureFailsRun(t *testing.T) {
	called := false
	cfg := baseConfig(t, func(context.Context, engine.Page, models.JourneyInput, AnnotateFunc) error {
		called = true
		return nil
	})
	hc := hooks.HooksConfig{BeforeRun: []hooks.HookConfig{{Command: "false", ErrorOnFail: true}}}

	results, err := NewRunner(engine.NewFakeDriver(), WithHooks(&hooks.Runner{}, hc)).Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, called)
	assert.Equal(t, models.OutcomeFailure, results[0].Result)
	assert.Equal(t, string(KindHook), results[0].FailureReason.Kind)
	assert.FileExists(t, results[0].TraceFilePath)
}

func TestRun_BeforeBatchHookFailureAborts(t *testing.T) {
	d := engine.NewFakeDriver()
	hc := hooks.HooksConfig{BeforeBatch: []hooks.HookConfig{{Command: "false", ErrorOnFail: true}}}

	_, err := NewRunner(d, WithHooks(&hooks.Runner{}, hc)).Run(context.Background(), baseConfig(t, noop))
	assert.Equal(t, KindHook, KindOf(err))
	assert.Empty(t, d.Calls())
}

func TestRunJourney(t *testing.T) {
	cfg := baseConfig(t, noop)
	require.NoError(t, RunJourney(context.Background(), engine.NewFakeDriver(), cfg))
	assert.FileExists(t, artifacts.ManifestFile(cfg.Capture.ArtifactsRoot))
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: KindLaunch, Op: "launch browser", Engine: "webkit", Input: "a", Err: errors.New("missing")}
	assert.Equal(t, "launch error: launch browser [a/webkit]: missing", err.Error())
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestRun_RunInfoInContext(t *testing.T) {
	var infos []RunInfo
	cfg := baseConfig(t, func(ctx context.Context, _ engine.Page, _ models.JourneyInput, _ AnnotateFunc) error {
		info, ok := RunInfoFromContext(ctx)
		require.True(t, ok)
		infos = append(infos, info)
		return nil
	})
	cfg.Engines = []models.EngineKey{"X", "Y"}

	results, err := NewRunner(engine.NewFakeDriver()).Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	for i, info := range infos {
		assert.Equal(t, "test", info.Name)
		assert.Equal(t, results[i].RunID, info.RunID)
		assert.Equal(t, results[i].EngineKey, info.Engine)
		assert.Equal(t, results[i].ArtifactsFolder, info.Folder)
	}

	_, ok := RunInfoFromContext(context.Background())
	assert.False(t, ok)
}
