// Package config combines a journey file with command-line overrides.
package config

import (
	"fmt"
	"time"

	"github.com/spboyer/journeys/internal/artifacts"
	"github.com/spboyer/journeys/internal/engine"
	"github.com/spboyer/journeys/internal/hooks"
	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/orchestration"
	"github.com/spboyer/journeys/internal/utils"
)

// Driver names.
const (
	DriverPlaywright = "playwright"
	DriverFake       = "fake"
)

// BatchConfig is a loaded journey file plus the settings that are not part of it.
type BatchConfig struct {
	spec          *models.JourneySpec
	specDir       string
	artifactsRoot string
	verbose       bool
	driver        string
	recordVideo   *bool
}

// Option configures a BatchConfig.
type Option func(*BatchConfig)

// WithSpecDir sets the directory relative paths in the journey file are resolved against.
func WithSpecDir(dir string) Option {
	return func(c *BatchConfig) {
		c.specDir = dir
	}
}

// WithArtifactsRoot overrides capture.artifacts_root. The path is used as
// given, relative to the working directory.
func WithArtifactsRoot(root string) Option {
	return func(c *BatchConfig) {
		c.artifactsRoot = root
	}
}

func WithVerbose(v bool) Option {
	return func(c *BatchConfig) {
		c.verbose = v
	}
}

// WithDriver overrides the journey file's driver.
func WithDriver(name string) Option {
	return func(c *BatchConfig) {
		c.driver = name
	}
}

// WithRecordVideo overrides capture.record_video.
func WithRecordVideo(v bool) Option {
	return func(c *BatchConfig) {
		c.recordVideo = utils.Ptr(v)
	}
}

// NewBatchConfig applies opts in order; later options win.
func NewBatchConfig(spec *models.JourneySpec, opts ...Option) *BatchConfig {
	c := &BatchConfig{spec: spec}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *BatchConfig) Spec() *models.JourneySpec { return c.spec }
func (c *BatchConfig) SpecDir() string           { return c.specDir }
func (c *BatchConfig) Verbose() bool             { return c.verbose }

// Driver returns the override, then the journey file's driver, then playwright.
func (c *BatchConfig) Driver() string {
	if c.driver != "" {
		return c.driver
	}
	if c.spec != nil && c.spec.Driver != "" {
		return c.spec.Driver
	}
	return DriverPlaywright
}

// ArtifactsRoot returns the override, then the journey file's artifacts_root
// resolved against its directory, then artifacts.DefaultRoot.
func (c *BatchConfig) ArtifactsRoot() string {
	if c.artifactsRoot != "" {
		return c.artifactsRoot
	}
	if c.spec != nil && c.spec.Capture.ArtifactsRoot != "" {
		return utils.ResolvePath(c.spec.Capture.ArtifactsRoot, c.specDir)
	}
	return artifacts.DefaultRoot
}

// RecordVideo returns the override or capture.record_video.
func (c *BatchConfig) RecordVideo() bool {
	if c.recordVideo != nil {
		return *c.recordVideo
	}
	return c.spec != nil && c.spec.Capture.RecordVideo
}

// Hooks returns the journey hooks with working directories resolved against
// the journey directory. A hook without one runs in that directory.
func (c *BatchConfig) Hooks() hooks.HooksConfig {
	if c.spec == nil {
		return hooks.HooksConfig{}
	}
	h := c.spec.Hooks
	return hooks.HooksConfig{
		BeforeBatch: c.resolveHookDirs(h.BeforeBatch),
		AfterBatch:  c.resolveHookDirs(h.AfterBatch),
		BeforeRun:   c.resolveHookDirs(h.BeforeRun),
		AfterRun:    c.resolveHookDirs(h.AfterRun),
	}
}

func (c *BatchConfig) resolveHookDirs(list []hooks.HookConfig) []hooks.HookConfig {
	if len(list) == 0 {
		return list
	}
	dirs := make([]string, len(list))
	for i, h := range list {
		dirs[i] = h.WorkingDirectory
	}
	dirs = utils.ResolvePaths(dirs, c.specDir)

	out := make([]hooks.HookConfig, len(list))
	for i, h := range list {
		h.WorkingDirectory = dirs[i]
		out[i] = h
	}
	return out
}

// OrchestrationConfig builds the batch for journey and post. Inputs from
// inputs_file are loaded here.
func (c *BatchConfig) OrchestrationConfig(journey orchestration.JourneyFunc, post orchestration.PostProcessFunc) (orchestration.Config, error) {
	if c.spec == nil {
		return orchestration.Config{}, fmt.Errorf("no journey spec loaded")
	}
	spec := *c.spec
	if spec.InputsFile != "" {
		spec.InputsFile = utils.ResolvePath(spec.InputsFile, c.specDir)
	}
	inputs, err := spec.ResolveInputs("")
	if err != nil {
		return orchestration.Config{}, fmt.Errorf("resolving inputs: %w", err)
	}

	var calibration *time.Duration
	if ms := c.spec.Capture.CalibrationOffsetMs; ms != nil {
		calibration = utils.Ptr(time.Duration(*ms) * time.Millisecond)
	}

	return orchestration.Config{
		Name:     c.spec.Name,
		InputKey: c.spec.InputKey,
		Inputs:   inputs,
		Engines:  c.spec.EngineKeys(),
		Launch:   engine.LaunchOptions(c.spec.Launch),
		Context:  engine.ContextOptions{Extra: c.spec.Context},
		Capture: orchestration.CaptureConfig{
			ArtifactsRoot:     c.ArtifactsRoot(),
			RecordVideo:       c.RecordVideo(),
			CalibrationOffset: calibration,
		},
		Journey:     journey,
		PostProcess: post,
	}, nil
}
