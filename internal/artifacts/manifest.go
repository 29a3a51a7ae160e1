package artifacts

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spboyer/journeys/internal/models"
)

// WriteManifest writes results as a pretty-printed JSON array to
// root/journeys.json and returns the path written.
func WriteManifest(root string, results []models.JourneyResult) (string, error) {
	if results == nil {
		results = []models.JourneyResult{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	path := ManifestFile(root)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) ([]models.JourneyResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var results []models.JourneyResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return results, nil
}
