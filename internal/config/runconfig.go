// Package config loads run configuration from JSON files.
//
// All fields are pointer-typed so a partial file only overrides what it
// names; the Get* accessors supply defaults for unset fields.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/lifegrid/internal/life"
)

// RunConfig describes one simulation run. The schema matches the -config
// flag of cmd/lifegrid; flags explicitly set on the command line win over
// values loaded from a file.
type RunConfig struct {
	Generations *int    `json:"generations,omitempty"`
	PrintEvery  *int    `json:"print_every,omitempty"`
	Ruleset     *string `json:"ruleset,omitempty"`
	Workers     *int    `json:"workers,omitempty"`
	Delay       *string `json:"delay,omitempty"` // time.ParseDuration syntax, e.g. "250ms"
	Listen      *string `json:"listen,omitempty"`
	ChartDir    *string `json:"chart_dir,omitempty"`
}

// Helper functions to create pointers
func ptrInt(v int) *int          { return &v }
func ptrString(v string) *string { return &v }

// EmptyRunConfig returns a RunConfig with all fields set to nil.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size. Fields omitted from the JSON file retain their default
// values, so partial configs are safe.
func LoadRunConfig(path string) (*RunConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RunConfig) Validate() error {
	if c.Generations != nil && *c.Generations < 0 {
		return fmt.Errorf("generations must be non-negative, got %d", *c.Generations)
	}
	if c.PrintEvery != nil && *c.PrintEvery < 0 {
		return fmt.Errorf("print_every must be non-negative, got %d", *c.PrintEvery)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	if c.Ruleset != nil {
		if _, err := life.ParseRuleset(*c.Ruleset); err != nil {
			return fmt.Errorf("invalid ruleset: %w", err)
		}
	}
	if c.Delay != nil {
		d, err := time.ParseDuration(*c.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("delay must be non-negative, got %s", d)
		}
	}
	return nil
}

// GetGenerations returns the generations value or the default.
func (c *RunConfig) GetGenerations() int {
	if c.Generations == nil {
		return 100 // default
	}
	return *c.Generations
}

// GetPrintEvery returns the print_every value or the default.
func (c *RunConfig) GetPrintEvery() int {
	if c.PrintEvery == nil {
		return 10 // default
	}
	return *c.PrintEvery
}

// GetRuleset returns the ruleset value or the default.
func (c *RunConfig) GetRuleset() string {
	if c.Ruleset == nil {
		return "mixed" // default
	}
	return *c.Ruleset
}

// GetWorkers returns the workers value or the default.
func (c *RunConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1 // default: serial evolution
	}
	return *c.Workers
}

// GetDelay returns the pause between generations or the default. Validate
// guarantees the stored string parses.
func (c *RunConfig) GetDelay() time.Duration {
	if c.Delay == nil {
		return 0 // default: run at full speed
	}
	d, err := time.ParseDuration(*c.Delay)
	if err != nil {
		return 0
	}
	return d
}

// GetListen returns the listen address or the default.
func (c *RunConfig) GetListen() string {
	if c.Listen == nil {
		return "" // default: no HTTP server
	}
	return *c.Listen
}

// GetChartDir returns the chart output directory or the default.
func (c *RunConfig) GetChartDir() string {
	if c.ChartDir == nil {
		return "" // default: no PNG plots
	}
	return *c.ChartDir
}
