package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/spboyer/journeys/internal/annotation"
	"github.com/spboyer/journeys/internal/artifacts"
	"github.com/spboyer/journeys/internal/engine"
	"github.com/spboyer/journeys/internal/hooks"
	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/template"
	"github.com/spboyer/journeys/internal/tracefile"
)

const tracerName = "github.com/spboyer/journeys/internal/orchestration"

// AnnotateFunc places a checkpoint in the current run's annotation list.
type AnnotateFunc func(message string)

// JourneyFunc drives one page through a user journey. A returned error (or a
// panic) marks the run as failed; the batch continues with the next run.
type JourneyFunc func(ctx context.Context, page engine.Page, input models.JourneyInput, annotate AnnotateFunc) error

// RunInfo describes the run a journey function is executing.
type RunInfo struct {
	Name   string
	RunID  string
	Engine models.EngineKey
	Folder string
}

type runInfoKey struct{}

// RunInfoFromContext returns the RunInfo of the journey run ctx belongs to.
func RunInfoFromContext(ctx context.Context) (RunInfo, bool) {
	info, ok := ctx.Value(runInfoKey{}).(RunInfo)
	return info, ok
}

// RunMeta is what a post-processing callback receives for each run.
type RunMeta struct {
	TraceFilePath string
	Input         models.JourneyInput
	Result        models.JourneyResult
}

// PostProcessFunc is invoked once per result, in run order, after every run
// has finished.
type PostProcessFunc func(ctx context.Context, meta RunMeta) error

// CaptureConfig controls what each run records.
type CaptureConfig struct {
	// ArtifactsRoot defaults to artifacts.DefaultRoot.
	ArtifactsRoot string
	RecordVideo   bool
	// CalibrationOffset defaults to annotation.DefaultCalibration when nil.
	CalibrationOffset *time.Duration
}

func (c CaptureConfig) root() string {
	if c.ArtifactsRoot == "" {
		return artifacts.DefaultRoot
	}
	return c.ArtifactsRoot
}

func (c CaptureConfig) calibration() time.Duration {
	if c.CalibrationOffset == nil {
		return annotation.DefaultCalibration
	}
	return *c.CalibrationOffset
}

// Config describes one batch.
type Config struct {
	// Name labels the batch in logs, spans and templates.
	Name        string
	InputKey    string
	Inputs      []models.JourneyInput
	Engines     []models.EngineKey
	Launch      engine.LaunchOptions
	Context     engine.ContextOptions
	Capture     CaptureConfig
	Journey     JourneyFunc
	PostProcess PostProcessFunc
}

func (c *Config) validate() error {
	if c.Journey == nil {
		return errors.New("journey function is required")
	}
	if c.InputKey == "" {
		return errors.New("input key is required")
	}
	if len(c.Inputs) == 0 {
		return errors.New("at least one input is required")
	}
	if len(c.Engines) == 0 {
		return errors.New("at least one engine is required")
	}
	if off := c.Capture.CalibrationOffset; off != nil && *off < 0 {
		return fmt.Errorf("calibration offset must not be negative, got %s", *c.Capture.CalibrationOffset)
	}

	seen := make(map[models.EngineKey]bool, len(c.Engines))
	for _, e := range c.Engines {
		if e == "" {
			return errors.New("engine key must not be empty")
		}
		if seen[e] {
			return fmt.Errorf("engine %q listed more than once", e)
		}
		seen[e] = true
	}
	values := make(map[string]int, len(c.Inputs))
	for i, in := range c.Inputs {
		if _, err := artifacts.RunFolderName(in, c.InputKey, c.Engines[0]); err != nil {
			return fmt.Errorf("input %d: %w", i+1, err)
		}
		v := in[c.InputKey]
		if first, ok := values[v]; ok {
			return fmt.Errorf("input %d: %s %q already used by input %d", i+1, c.InputKey, v, first)
		}
		values[v] = i + 1
	}
	return nil
}

// MetricsSink receives per-run measurements.
type MetricsSink interface {
	BrowserLaunched(engine models.EngineKey)
	RunFinished(engine models.EngineKey, outcome models.Outcome, d time.Duration)
}

// Runner executes batches of journeys against a Driver.
type Runner struct {
	driver engine.Driver

	hookRunner *hooks.Runner
	hooks      hooks.HooksConfig

	metrics  MetricsSink
	clock    annotation.Clock
	newRunID func() string
	tracer   trace.Tracer

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithHooks runs cfg's lifecycle hooks with hr.
func WithHooks(hr *hooks.Runner, cfg hooks.HooksConfig) RunnerOption {
	return func(r *Runner) {
		r.hookRunner = hr
		r.hooks = cfg
	}
}

// WithMetrics records launches and run outcomes to m.
func WithMetrics(m MetricsSink) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithClock replaces time.Now for annotation offsets and durations.
func WithClock(c annotation.Clock) RunnerOption {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithRunIDs replaces the uuid generator for run IDs.
func WithRunIDs(next func() string) RunnerOption {
	return func(r *Runner) {
		r.newRunID = next
	}
}

// NewRunner creates a runner that launches browsers through driver.
func NewRunner(driver engine.Driver, opts ...RunnerOption) *Runner {
	r := &Runner{
		driver:    driver,
		clock:     time.Now,
		newRunID:  uuid.NewString,
		tracer:    otel.Tracer(tracerName),
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RunJourney runs one batch with default options and discards the results;
// they are still persisted to the manifest.
func RunJourney(ctx context.Context, driver engine.Driver, cfg Config) error {
	_, err := NewRunner(driver).Run(ctx, cfg)
	return err
}

// batch is the state of one Run call. Browsers are never shared between batches.
type batch struct {
	r           *Runner
	cfg         Config
	root        string
	calibration time.Duration
	total       int

	browsers map[models.EngineKey]engine.Browser
	// launched keeps first-launch order for closing.
	launched []models.EngineKey
	results  []models.JourneyResult
}

// Run executes every (input, engine) pair in nested order: all engines for
// the first input, then all engines for the next. It returns the results in
// run order together with the first fatal error, if any. Journey failures are
// recorded in the results and are not errors.
func (r *Runner) Run(ctx context.Context, cfg Config) (_ []models.JourneyResult, err error) {
	if err := cfg.validate(); err != nil {
		return nil, &Error{Kind: KindConfig, Op: "validate batch", Err: err}
	}

	b := &batch{
		r:           r,
		cfg:         cfg,
		root:        cfg.Capture.root(),
		calibration: cfg.Capture.calibration(),
		total:       len(cfg.Inputs) * len(cfg.Engines),
		browsers:    make(map[models.EngineKey]engine.Browser, len(cfg.Engines)),
		results:     make([]models.JourneyResult, 0, len(cfg.Inputs)*len(cfg.Engines)),
	}

	ctx, span := r.tracer.Start(ctx, "journeys.batch", trace.WithAttributes(
		attribute.String("journeys.name", cfg.Name),
		attribute.Int("journeys.runs", b.total),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := artifacts.PrepareRoot(b.root); err != nil {
		return nil, &Error{Kind: KindIO, Op: "prepare artifacts root", Err: err}
	}

	batchEnv := map[string]string{"name": cfg.Name, "artifacts_root": b.root}
	if err := r.runHooks(ctx, hooks.BeforeBatch, &template.Context{Journey: cfg.Name}, batchEnv); err != nil {
		return nil, &Error{Kind: KindHook, Op: "before_batch hooks", Err: err}
	}
	defer func() {
		if herr := r.runHooks(ctx, hooks.AfterBatch, &template.Context{Journey: cfg.Name}, batchEnv); herr != nil {
			slog.Warn("after_batch hook failed", "error", herr)
		}
	}()

	// Close browsers even if a run aborts the batch.
	defer b.closeBrowsers(ctx) //nolint:errcheck

	start := r.clock()
	r.notifyProgress(ProgressEvent{EventType: EventBatchStart, TotalRuns: b.total})

	for _, input := range cfg.Inputs {
		for _, key := range cfg.Engines {
			if err := b.run(ctx, input, key); err != nil {
				return b.results, err
			}
		}
	}

	if err := b.closeBrowsers(ctx); err != nil {
		return b.results, err
	}

	if _, err := artifacts.WriteManifest(b.root, b.results); err != nil {
		return b.results, &Error{Kind: KindIO, Op: "write manifest", Err: err}
	}

	if err := b.postProcess(ctx); err != nil {
		return b.results, err
	}

	r.notifyProgress(ProgressEvent{
		EventType:  EventBatchComplete,
		TotalRuns:  b.total,
		DurationMs: r.clock().Sub(start).Milliseconds(),
		Details:    map[string]any{"digest": models.Summarize(b.results)},
	})
	return b.results, nil
}

func (b *batch) browser(ctx context.Context, key models.EngineKey) (engine.Browser, error) {
	if br, ok := b.browsers[key]; ok {
		return br, nil
	}
	slog.Debug("launching browser", "engine", key)
	br, err := b.r.driver.Launch(ctx, key, b.cfg.Launch)
	if err != nil {
		return nil, &Error{Kind: KindLaunch, Op: "launch browser", Engine: key, Err: err}
	}
	b.browsers[key] = br
	b.launched = append(b.launched, key)
	if b.r.metrics != nil {
		b.r.metrics.BrowserLaunched(key)
	}
	return br, nil
}

// closeBrowsers closes every launched browser once. Later calls do nothing.
func (b *batch) closeBrowsers(ctx context.Context) error {
	var first error
	for _, key := range b.launched {
		br := b.browsers[key]
		delete(b.browsers, key)
		if err := br.Close(ctx); err != nil {
			if first == nil {
				first = &Error{Kind: KindEngine, Op: "close browser", Engine: key, Err: err}
			} else {
				slog.Warn("closing browser failed", "engine", key, "error", err)
			}
		}
	}
	b.launched = nil
	return first
}

func (b *batch) run(ctx context.Context, input models.JourneyInput, key models.EngineKey) error {
	value := input[b.cfg.InputKey]
	runNum := len(b.results) + 1
	engineErr := func(op string, err error) error {
		return &Error{Kind: KindEngine, Op: op, Engine: key, Input: value, Err: err}
	}

	ctx, span := b.r.tracer.Start(ctx, "journeys.run", trace.WithAttributes(
		attribute.String("journeys.input", value),
		attribute.String("journeys.engine", string(key)),
	))
	defer span.End()

	br, err := b.browser(ctx, key)
	if err != nil {
		return err
	}

	dir, err := artifacts.AllocateRunFolder(b.root, input, b.cfg.InputKey, key)
	if err != nil {
		return &Error{Kind: KindIO, Op: "allocate run folder", Engine: key, Input: value, Err: err}
	}

	copts := b.cfg.Context
	if b.cfg.Capture.RecordVideo {
		copts.RecordVideoDir = dir
	}
	bctx, err := br.NewContext(ctx, copts)
	if err != nil {
		return engineErr("new context", err)
	}
	contextOpen := true
	defer func() {
		if contextOpen {
			if cerr := bctx.Close(ctx); cerr != nil {
				slog.Warn("closing browser context failed", "input", value, "engine", key, "error", cerr)
			}
		}
	}()

	tracing := bctx.Tracing()
	if err := tracing.Start(ctx, engine.TracingOptions{
		Title:       value + "-" + string(key),
		Screenshots: true,
		Snapshots:   true,
	}); err != nil {
		return engineErr("start tracing", err)
	}

	page, err := bctx.NewPage(ctx)
	if err != nil {
		return engineErr("new page", err)
	}

	runID := b.r.newRunID()
	tctx := &template.Context{
		Journey:   b.cfg.Name,
		Engine:    string(key),
		RunID:     runID,
		Folder:    dir,
		Timestamp: b.r.clock().UTC().Format(time.RFC3339),
		Vars:      input,
	}
	env := map[string]string{
		"name":      b.cfg.Name,
		"input_key": b.cfg.InputKey,
		"value":     value,
		"engine":    string(key),
		"run_id":    runID,
		"folder":    dir,
	}

	b.r.notifyProgress(ProgressEvent{
		EventType: EventRunStart,
		Input:     value,
		Engine:    key,
		RunNum:    runNum,
		TotalRuns: b.total,
	})
	slog.Debug("run started", "input", value, "engine", key, "run_id", runID)

	runCtx := context.WithValue(ctx, runInfoKey{}, RunInfo{Name: b.cfg.Name, RunID: runID, Engine: key, Folder: dir})
	rec := annotation.NewRecorder(b.calibration, b.r.clock)
	var failure *models.FailureReason
	if herr := b.r.runHooks(ctx, hooks.BeforeRun, tctx, env); herr != nil {
		failure = &models.FailureReason{Kind: string(KindHook), Message: herr.Error(), Err: herr}
	} else if jerr := invoke(runCtx, b.cfg.Journey, page, input, rec.Annotate); jerr != nil {
		failure = &models.FailureReason{Kind: string(KindJourney), Message: jerr.Error(), Err: jerr}
	}
	rec.Seal()
	elapsed := b.r.clock().Sub(rec.Start())

	// The trace must end on the page's final state whatever the journey did.
	if _, err := page.Screenshot(ctx, ""); err != nil {
		return engineErr("final screenshot", err)
	}
	tracePath := artifacts.TraceFile(dir)
	if err := tracing.Stop(ctx, tracePath); err != nil {
		return engineErr("stop tracing", err)
	}
	video := page.Video()
	if err := page.Close(ctx); err != nil {
		return engineErr("close page", err)
	}
	var recording string
	if video != nil {
		recording = artifacts.RecordingFile(dir)
		if err := video.SaveAs(ctx, recording); err != nil {
			return engineErr("save recording", err)
		}
	}
	contextOpen = false
	if err := bctx.Close(ctx); err != nil {
		return engineErr("close context", err)
	}

	result := models.JourneyResult{
		RunID:           runID,
		Result:          models.OutcomeSuccess,
		TraceFilePath:   tracePath,
		Input:           input.Clone(),
		EngineKey:       key,
		ArtifactsFolder: dir,
		RecordingPath:   recording,
		Annotations:     rec.Annotations(),
		StartedAt:       rec.Start().UTC().Round(0),
		DurationMs:      elapsed.Milliseconds(),
	}
	if failure != nil {
		result.Result = models.OutcomeFailure
		result.FailureReason = failure
		span.SetStatus(codes.Error, failure.Message)
	}
	span.SetAttributes(attribute.String("journeys.result", string(result.Result)))

	env["result"] = string(result.Result)
	if herr := b.r.runHooks(ctx, hooks.AfterRun, tctx, env); herr != nil {
		slog.Warn("after_run hook failed", "input", value, "engine", key, "error", herr)
	}

	b.results = append(b.results, result)
	if b.r.metrics != nil {
		b.r.metrics.RunFinished(key, result.Result, elapsed)
	}
	slog.Debug("run finished", "input", value, "engine", key, "result", result.Result, "duration_ms", result.DurationMs)
	b.r.notifyProgress(ProgressEvent{
		EventType:  EventRunComplete,
		Input:      value,
		Engine:     key,
		RunNum:     runNum,
		TotalRuns:  b.total,
		Result:     result.Result,
		DurationMs: result.DurationMs,
	})
	return nil
}

// invoke calls fn, converting a panic into a *PanicError.
func invoke(ctx context.Context, fn JourneyFunc, page engine.Page, input models.JourneyInput, annotate AnnotateFunc) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	return fn(ctx, page, input, annotate)
}

func (b *batch) postProcess(ctx context.Context) error {
	if b.cfg.PostProcess == nil {
		return nil
	}
	for i, res := range b.results {
		value := res.Input[b.cfg.InputKey]
		b.r.notifyProgress(ProgressEvent{
			EventType: EventPostProcessStart,
			Input:     value,
			Engine:    res.EngineKey,
			RunNum:    i + 1,
			TotalRuns: len(b.results),
		})

		start := b.r.clock()
		err := b.cfg.PostProcess(ctx, RunMeta{
			TraceFilePath: res.TraceFilePath,
			Input:         res.Input,
			Result:        res,
		})
		if err != nil {
			kind := KindPostProcess
			var pe *tracefile.ParseError
			if errors.As(err, &pe) {
				kind = KindParse
			}
			return &Error{Kind: kind, Op: "post-process", Engine: res.EngineKey, Input: value, Err: err}
		}

		b.r.notifyProgress(ProgressEvent{
			EventType:  EventPostProcessComplete,
			Input:      value,
			Engine:     res.EngineKey,
			RunNum:     i + 1,
			TotalRuns:  len(b.results),
			Result:     res.Result,
			DurationMs: b.r.clock().Sub(start).Milliseconds(),
		})
	}
	return nil
}

// runHooks renders and executes the hooks registered for point.
func (r *Runner) runHooks(ctx context.Context, point string, tctx *template.Context, env map[string]string) error {
	if r.hookRunner == nil {
		return nil
	}
	list := r.hooks.For(point)
	if len(list) == 0 {
		return nil
	}
	rendered := make([]hooks.HookConfig, len(list))
	for i, h := range list {
		cmd, err := template.Render(h.Command, tctx)
		if err != nil {
			return fmt.Errorf("hook %s[%d]: %w", point, i, err)
		}
		h.Command = cmd
		rendered[i] = h
	}
	return r.hookRunner.Execute(ctx, point, rendered, env)
}
