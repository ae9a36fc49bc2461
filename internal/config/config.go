// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Input
	File        string `json:"file,omitempty"`         // Path to resume document (pdf, image, txt)
	Text        string `json:"text,omitempty"`         // Path to pre-extracted resume text
	GroundTruth string `json:"ground_truth,omitempty"` // Path to ground-truth JSON for accuracy evaluation

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for artifact storage

	// Quality gate policy. MinConfidence is a pointer so an explicit 0
	// (disable the confidence rule) is distinct from unset.
	MinConfidence    *float64 `json:"min_confidence,omitempty"`    // Mean confidence floor (0.0-1.0)
	RequiredSections []string `json:"required_sections,omitempty"` // Sections the gate requires

	// Limits
	CallTimeoutSeconds int `json:"call_timeout_seconds,omitempty"` // Per-model-call timeout
	Concurrency        int `json:"concurrency,omitempty"`          // Parallel section extraction bound
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.File != "" && c.Text != "" {
		return fmt.Errorf("config error: 'file' and 'text' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.MinConfidence != nil && (*c.MinConfidence < 0 || *c.MinConfidence > 1) {
		return fmt.Errorf("config error: 'min_confidence' must be between 0 and 1")
	}
	if c.CallTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'call_timeout_seconds' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.File != "" {
		if _, err := os.Stat(c.File); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.File)
		}
	}

	if c.GroundTruth != "" {
		if _, err := os.Stat(c.GroundTruth); os.IsNotExist(err) {
			return fmt.Errorf("config error: ground truth file not found: %s", c.GroundTruth)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.File == "" {
		result.File = defaults.File
	}
	if result.Text == "" {
		result.Text = defaults.Text
	}
	if result.GroundTruth == "" {
		result.GroundTruth = defaults.GroundTruth
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RequiredSections == nil {
		result.RequiredSections = defaults.RequiredSections
	}

	// MinConfidence: nil means unset; an explicit zero is kept
	if result.MinConfidence == nil {
		result.MinConfidence = defaults.MinConfidence
	}

	// Numeric fields: use default if zero
	if result.CallTimeoutSeconds == 0 {
		result.CallTimeoutSeconds = defaults.CallTimeoutSeconds
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Boolean fields: true wins
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
