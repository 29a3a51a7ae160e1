package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spboyer/journeys/internal/config"
	"github.com/spboyer/journeys/internal/engine"
	"github.com/spboyer/journeys/internal/engine/playwright"
	"github.com/spboyer/journeys/internal/hooks"
	"github.com/spboyer/journeys/internal/metrics"
	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/orchestration"
	"github.com/spboyer/journeys/internal/postprocess"
	"github.com/spboyer/journeys/internal/reporting"
	"github.com/spboyer/journeys/internal/script"
	"github.com/spboyer/journeys/internal/session"
	"github.com/spboyer/journeys/internal/spinner"
	"github.com/spboyer/journeys/internal/telemetry"
	"github.com/spboyer/journeys/internal/transcode"
	"github.com/spboyer/journeys/internal/utils"
	"github.com/spf13/cobra"
)

var (
	artifactsDir    string
	driverName      string
	recordVideo     bool
	metricsFile     string
	junitPath       string
	format          string
	otelStdout      bool
	verbose         bool
	installBrowsers bool
	sessionLog      string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <journey.yaml>",
		Short: "Run a journey for every input and engine",
		Long: `Run a journey file.

Every input is driven through every engine, input-major. Each run gets its
own folder {value}-{engine} under the artifacts root holding trace.zip and,
with --video, recording.webm. A journeys.json manifest is written once all
runs finish.

The artifacts root is emptied at the start of every batch.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&artifactsDir, "artifacts", "", "Artifacts root (overrides capture.artifacts_root)")
	cmd.Flags().StringVar(&driverName, "driver", "", "Browser driver: playwright, fake (overrides the journey file)")
	cmd.Flags().BoolVar(&recordVideo, "video", false, "Record a video of every run (overrides capture.record_video)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")
	cmd.Flags().StringVar(&junitPath, "junit", "", "Write JUnit XML results to this path")
	cmd.Flags().StringVar(&format, "format", "default", "Output format: default, github-comment")
	cmd.Flags().BoolVar(&otelStdout, "otel-stdout", false, "Export OpenTelemetry spans to stderr")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-run progress")
	cmd.Flags().BoolVar(&installBrowsers, "install", false, "Install the Playwright driver and browsers before running")
	cmd.Flags().StringVar(&sessionLog, "session-log", "", "Append NDJSON session events to this file, or to a new timestamped file in this directory")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	if format != "default" && format != "github-comment" {
		return fmt.Errorf("unknown output format: %s (supported: default, github-comment)", format)
	}

	spec, err := models.LoadJourneySpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load journey: %w", err)
	}

	specDir := filepath.Dir(specPath)
	if abs, err := filepath.Abs(specDir); err == nil {
		specDir = abs
	}

	opts := []config.Option{
		config.WithSpecDir(specDir),
		config.WithArtifactsRoot(artifactsDir),
		config.WithVerbose(verbose),
		config.WithDriver(driverName),
	}
	if cmd.Flags().Changed("video") {
		opts = append(opts, config.WithRecordVideo(recordVideo))
	}
	cfg := config.NewBatchConfig(spec, opts...)

	journey, err := script.Compile(spec.Steps)
	if err != nil {
		return fmt.Errorf("invalid steps: %w", err)
	}

	ocfg, err := cfg.OrchestrationConfig(journey, buildPostProcess(spec.PostProcess))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if otelStdout {
		tp, err := telemetry.NewTracerProvider(cmd.ErrOrStderr(), "journeys", version)
		if err != nil {
			return fmt.Errorf("starting tracer provider: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				slog.Warn("tracer provider shutdown failed", "error", err)
			}
		}()
	}

	driver, closeDriver, err := newDriver(cfg.Driver(), ocfg.Engines)
	if err != nil {
		return err
	}
	defer closeDriver()

	recorder := metrics.NewRecorder()
	runner := orchestration.NewRunner(driver,
		orchestration.WithHooks(&hooks.Runner{Verbose: cfg.Verbose()}, cfg.Hooks()),
		orchestration.WithMetrics(recorder),
	)

	var logger session.Logger = session.NopLogger{}
	if sessionLog != "" {
		l, err := session.Open(sessionLog)
		if err != nil {
			return err
		}
		logger = l
	}
	defer logger.Close() //nolint:errcheck
	engineNames := make([]string, 0, len(ocfg.Engines))
	for _, e := range ocfg.Engines {
		engineNames = append(engineNames, string(e))
	}
	logEvent(logger, session.EventSessionStart,
		session.SessionStartData(specPath, cfg.Driver(), engineNames, len(ocfg.Inputs)*len(ocfg.Engines)))
	runner.OnProgress(session.Listener(logger))

	out := cmd.OutOrStdout()
	if format == "default" {
		fmt.Fprintf(out, "Running journey: %s\n", displayName(spec, specPath))
		fmt.Fprintf(out, "Driver: %s\n", cfg.Driver())
		fmt.Fprintf(out, "Artifacts: %s\n\n", ocfg.Capture.ArtifactsRoot)
	}

	runner.OnProgress(utils.ProgressToSlog)
	switch {
	case format != "default":
	case verbose:
		runner.OnProgress(verboseProgressListener(out))
	case spinner.IsTerminal(out):
		s := spinner.New(out, "starting "+spec.Name)
		defer s.Stop()
		runner.OnProgress(spinnerProgressListener(s))
	default:
		runner.OnProgress(simpleProgressListener(out))
	}

	results, runErr := runner.Run(ctx, ocfg)

	if metricsFile != "" {
		if err := recorder.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if runErr != nil {
		logEvent(logger, session.EventError, session.ErrorData(runErr.Error()))
		return fmt.Errorf("journey batch failed: %w", runErr)
	}
	digest := models.Summarize(results)
	logEvent(logger, session.EventSessionEnd,
		session.SessionCompleteData(digest.Total, digest.Succeeded, digest.Failed, digest.DurationMs))

	if junitPath != "" {
		if err := reporting.WriteJUnit(junitPath, spec.Name, results); err != nil {
			return fmt.Errorf("failed to write JUnit XML: %w", err)
		}
	}

	switch format {
	case "github-comment":
		fmt.Fprint(out, reporting.FormatGitHubComment(results,
			reporting.WithTitle(spec.Name),
			reporting.WithInputKey(spec.InputKey)))
	default:
		printSummary(out, results, spec.InputKey)
	}

	return failureError(results)
}

func logEvent(l session.Logger, t session.EventType, data map[string]any) {
	if err := l.Log(session.NewEvent(t, data)); err != nil {
		slog.Warn("writing session event failed", "type", t, "error", err)
	}
}

// newDriver returns the named driver and a function releasing it.
func newDriver(name string, engines []models.EngineKey) (engine.Driver, func(), error) {
	switch name {
	case config.DriverFake:
		return engine.NewFakeDriver(), func() {}, nil
	case config.DriverPlaywright:
		if installBrowsers {
			if err := playwright.Install(engines); err != nil {
				return nil, nil, fmt.Errorf("installing browsers: %w", err)
			}
		}
		d, err := playwright.New()
		if err != nil {
			return nil, nil, fmt.Errorf("starting playwright: %w", err)
		}
		return d, func() {
			if err := d.Stop(); err != nil {
				slog.Warn("stopping playwright failed", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown driver: %s (supported: playwright, fake)", name)
	}
}

// buildPostProcess returns nil when the journey asks for no post-processing.
func buildPostProcess(spec models.PostProcessSpec) orchestration.PostProcessFunc {
	var handlers []postprocess.Handler
	if spec.Summarize {
		handlers = append(handlers, postprocess.Summarize(slog.Default()))
	}
	if spec.Transcode == "mp4" {
		handlers = append(handlers, postprocess.Transcode(transcode.New(transcode.Options{})))
	}
	if len(handlers) == 0 {
		return nil
	}
	return postprocess.Wrap(postprocess.Chain(handlers...))
}

func failureError(results []models.JourneyResult) error {
	digest := models.Summarize(results)
	if digest.Failed > 0 {
		return &JourneyFailureError{
			Message: fmt.Sprintf("batch completed with %d of %d journey(s) failed", digest.Failed, digest.Total),
		}
	}
	return nil
}

func displayName(spec *models.JourneySpec, specPath string) string {
	if spec.Name != "" {
		return spec.Name
	}
	return filepath.Base(specPath)
}

func verboseProgressListener(w io.Writer) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventBatchStart:
			fmt.Fprintf(w, "Starting batch with %d run(s)...\n\n", event.TotalRuns)
		case orchestration.EventRunStart:
			fmt.Fprintf(w, "[%d/%d] %s on %s...", event.RunNum, event.TotalRuns, event.Input, event.Engine)
		case orchestration.EventRunComplete:
			duration := time.Duration(event.DurationMs) * time.Millisecond
			fmt.Fprintf(w, " %s (%s)\n", event.Result, formatDuration(duration))
		case orchestration.EventPostProcessComplete:
			fmt.Fprintf(w, "  post-processed %s-%s\n", event.Input, event.Engine)
		case orchestration.EventBatchComplete:
			duration := time.Duration(event.DurationMs) * time.Millisecond
			fmt.Fprintf(w, "\nBatch completed in %s\n\n", formatDuration(duration))
		}
	}
}

func simpleProgressListener(w io.Writer) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		if event.EventType != orchestration.EventRunComplete {
			return
		}
		status := "✓"
		if event.Result != models.OutcomeSuccess {
			status = "✗"
		}
		fmt.Fprintf(w, "%s [%d/%d] %s-%s\n", status, event.RunNum, event.TotalRuns, event.Input, event.Engine)
	}
}

func spinnerProgressListener(s *spinner.Spinner) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventRunStart:
			s.Update(fmt.Sprintf("[%d/%d] %s on %s", event.RunNum, event.TotalRuns, event.Input, event.Engine))
		case orchestration.EventPostProcessStart:
			s.Update(fmt.Sprintf("post-processing [%d/%d]", event.RunNum, event.TotalRuns))
		case orchestration.EventBatchComplete:
			s.Stop()
		}
	}
}
