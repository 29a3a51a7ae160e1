// Package artifacts owns the on-disk layout of a batch: the artifacts root,
// one folder per (input, engine) run, and the journeys.json manifest.
package artifacts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spboyer/journeys/internal/models"
)

// File names inside a run folder and the artifacts root.
const (
	TraceFileName     = "trace.zip"
	RecordingFileName = "recording.webm"
	ManifestFileName  = "journeys.json"
)

// DefaultRoot is used when no artifacts root is configured.
const DefaultRoot = "artifacts"

// ErrInvalidFolderName is returned when an input value cannot name a run folder.
var ErrInvalidFolderName = errors.New("input value cannot be used as a folder name")

// PrepareRoot makes path an empty directory. An existing directory is removed
// with everything in it and recreated; batches never build on a previous run.
func PrepareRoot(path string) error {
	if path == "" {
		return fmt.Errorf("artifacts root is empty")
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("reset artifacts root %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create artifacts root %s: %w", path, err)
	}
	return nil
}

// RunFolderName returns "{input[inputKey]}-{engineKey}".
func RunFolderName(input models.JourneyInput, inputKey string, engineKey models.EngineKey) (string, error) {
	value, ok := input[inputKey]
	if !ok || value == "" {
		return "", fmt.Errorf("input has no value for key %q", inputKey)
	}
	if value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFolderName, value)
	}
	return value + "-" + string(engineKey), nil
}

// AllocateRunFolder creates (if needed) and returns root/{input[inputKey]}-{engineKey}.
func AllocateRunFolder(root string, input models.JourneyInput, inputKey string, engineKey models.EngineKey) (string, error) {
	name, err := RunFolderName(input, inputKey, engineKey)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run folder %s: %w", dir, err)
	}
	return dir, nil
}

// TraceFile returns the trace archive path inside a run folder.
func TraceFile(runFolder string) string {
	return filepath.Join(runFolder, TraceFileName)
}

// RecordingFile returns the video recording path inside a run folder.
func RecordingFile(runFolder string) string {
	return filepath.Join(runFolder, RecordingFileName)
}

// ManifestFile returns the manifest path inside an artifacts root.
func ManifestFile(root string) string {
	return filepath.Join(root, ManifestFileName)
}
