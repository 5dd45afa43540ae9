// Package manifest describes an ingest run: which datasets to load, where
// the measurement database lives, and which artifacts to write. Manifests
// are YAML files validated before any work starts, so a typo fails the run
// up front instead of after a long import.
package manifest

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Manifest is one ingest run.
type Manifest struct {
	Wards       WardsSource       `yaml:"wards" validate:"required"`
	Routes      RoutesSource      `yaml:"routes" validate:"required"`
	TravelTimes TravelTimesSource `yaml:"travel-times"`
	Database    DatabaseTarget    `yaml:"database"`
	Artifacts   Artifacts         `yaml:"artifacts"`
}

// WardsSource names the ward boundary GeoJSON file.
type WardsSource struct {
	Path string `yaml:"path" validate:"required"`
}

// RoutesSource names the route dataset and its format.
type RoutesSource struct {
	Path   string `yaml:"path" validate:"required"`
	Format string `yaml:"format" validate:"omitempty,oneof=bmtc gtfs"`
}

// TravelTimesSource names where travel time aggregates come from: a local
// CSV (optionally gzipped) or a download URL with an optional auth header.
// Both empty means the run only plans pairs and writes artifacts.
type TravelTimesSource struct {
	Path            string `yaml:"path" validate:"excluded_with=URL"`
	URL             string `yaml:"url" validate:"omitempty,url"`
	AuthHeaderName  string `yaml:"auth-header-name" validate:"required_with=AuthHeaderValue"`
	AuthHeaderValue string `yaml:"auth-header-value"`
}

// DatabaseTarget names the measurement database. An empty path keeps the
// run in memory, which only makes sense together with artifact output.
type DatabaseTarget struct {
	Path string `yaml:"path"`
}

// Artifacts names the optional JSON outputs of a run.
type Artifacts struct {
	// WardPairsPath receives the planned directed ward pairs in the
	// [[wardID, movementID], ...] tuple layout.
	WardPairsPath string `yaml:"ward-pairs"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	v := validator.New()
	if err := v.Struct(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	return &m, nil
}
