package models

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/journeys/internal/dataset"
	"github.com/spboyer/journeys/internal/hooks"
	"gopkg.in/yaml.v3"
)

// JourneySpec is a journey file: which inputs to drive, through which
// engines, using which steps.
type JourneySpec struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	InputKey    string            `yaml:"input_key" json:"input_key"`
	Engines     []string          `yaml:"engines" json:"engines"`
	Driver      string            `yaml:"driver,omitempty" json:"driver,omitempty"`
	Launch      map[string]any    `yaml:"launch,omitempty" json:"launch,omitempty"`
	Context     map[string]any    `yaml:"context,omitempty" json:"context,omitempty"`
	Capture     CaptureSpec       `yaml:"capture,omitempty" json:"capture,omitempty"`
	Inputs      []JourneyInput    `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	InputsFile  string            `yaml:"inputs_file,omitempty" json:"inputs_file,omitempty"`
	Steps       []StepConfig      `yaml:"steps" json:"steps"`
	Hooks       hooks.HooksConfig `yaml:"hooks,omitempty" json:"hooks,omitempty"`
	PostProcess PostProcessSpec   `yaml:"post_process,omitempty" json:"post_process,omitempty"`
}

// CaptureSpec controls what each run records.
type CaptureSpec struct {
	ArtifactsRoot string `yaml:"artifacts_root,omitempty" json:"artifacts_root,omitempty"`
	RecordVideo   bool   `yaml:"record_video,omitempty" json:"record_video,omitempty"`

	// CalibrationOffsetMs is nil when unset so that an explicit 0 can be told apart.
	CalibrationOffsetMs *int `yaml:"calibration_offset_ms,omitempty" json:"calibration_offset_ms,omitempty"`
}

// PostProcessSpec selects the built-in post-processing handlers.
type PostProcessSpec struct {
	Transcode string `yaml:"transcode,omitempty" json:"transcode,omitempty"`
	Summarize bool   `yaml:"summarize,omitempty" json:"summarize,omitempty"`
}

// StepConfig is one scripted action. Only the fields relevant to Action are read.
type StepConfig struct {
	Action     string `yaml:"action" json:"action"`
	URL        string `yaml:"url,omitempty" json:"url,omitempty"`
	Selector   string `yaml:"selector,omitempty" json:"selector,omitempty"`
	Value      string `yaml:"value,omitempty" json:"value,omitempty"`
	Message    string `yaml:"message,omitempty" json:"message,omitempty"`
	Path       string `yaml:"path,omitempty" json:"path,omitempty"`
	DurationMs int    `yaml:"duration_ms,omitempty" json:"duration_ms,omitempty"`
}

// LoadJourneySpec loads a spec from a YAML file
func LoadJourneySpec(path string) (*JourneySpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec JourneySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

// Validate returns the first problem found in s, or nil.
func (s *JourneySpec) Validate() error {
	if s.InputKey == "" {
		return fmt.Errorf("input_key is required")
	}
	if len(s.Engines) == 0 {
		return fmt.Errorf("at least one engine is required")
	}
	seen := map[string]bool{}
	for _, e := range s.Engines {
		if _, err := ParseEngineKey(e); err != nil {
			return err
		}
		if seen[e] {
			return fmt.Errorf("engine %q listed more than once", e)
		}
		seen[e] = true
	}
	if len(s.Inputs) == 0 && s.InputsFile == "" {
		return fmt.Errorf("inputs or inputs_file is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}
	if s.Capture.CalibrationOffsetMs != nil && *s.Capture.CalibrationOffsetMs < 0 {
		return fmt.Errorf("calibration_offset_ms must not be negative, got %d", *s.Capture.CalibrationOffsetMs)
	}
	return nil
}

// EngineKeys returns the engines in declaration order. Validate must have passed.
func (s *JourneySpec) EngineKeys() []EngineKey {
	keys := make([]EngineKey, 0, len(s.Engines))
	for _, e := range s.Engines {
		keys = append(keys, EngineKey(e))
	}
	return keys
}

// ResolveInputs returns the inline inputs followed by the rows of inputs_file.
// A relative inputs_file is resolved against basePath.
func (s *JourneySpec) ResolveInputs(basePath string) ([]JourneyInput, error) {
	inputs := make([]JourneyInput, 0, len(s.Inputs))
	for _, in := range s.Inputs {
		inputs = append(inputs, in.Clone())
	}

	if s.InputsFile != "" {
		path := s.InputsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(basePath, path)
		}
		rows, err := dataset.LoadCSV(path)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			inputs = append(inputs, JourneyInput(row))
		}
	}

	seen := make(map[string]int, len(inputs))
	for i, in := range inputs {
		v := in[s.InputKey]
		if v == "" {
			return nil, fmt.Errorf("input %d has no value for input_key %q", i+1, s.InputKey)
		}
		if first, ok := seen[v]; ok {
			return nil, fmt.Errorf("input %d repeats %s %q from input %d", i+1, s.InputKey, v, first)
		}
		seen[v] = i + 1
	}
	return inputs, nil
}
