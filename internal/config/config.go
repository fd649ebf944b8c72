// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variables consulted by FromEnv
const (
	EnvBaseURL = "RESUME_MATCHER_BASE_URL"
	EnvTimeout = "RESUME_MATCHER_TIMEOUT"
)

// Built-in defaults
const (
	DefaultBaseURL      = "http://127.0.0.1:8000"
	DefaultExcerptLimit = 800
	DefaultBatchLimit   = 4
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Service
	BaseURL   string            `json:"base_url,omitempty" validate:"omitempty,url"` // Scoring service root
	Timeout   string            `json:"timeout,omitempty"`                           // Go duration; empty means no timeout
	UserAgent string            `json:"user_agent,omitempty"`                        // User-Agent header
	Headers   map[string]string `json:"headers,omitempty"`                           // Extra request headers

	// Inputs
	Pairs     string `json:"pairs,omitempty"`      // Inline JSON array of {company, role}
	PairsFile string `json:"pairs_file,omitempty"` // Path to a JSON file of pairs
	// PairsGiven records that a pairs source was set, even to an empty value
	PairsGiven bool `json:"-"`

	// Limits
	ExcerptLimit int `json:"excerpt_limit,omitempty" validate:"gte=0"` // Characters of résumé text shown
	BatchLimit   int `json:"batch_limit,omitempty" validate:"gte=0"`   // Concurrent uploads in batch mode

	// Behavior
	StrictScores bool `json:"strict_scores,omitempty"` // Reject unparseable scores instead of charting 0
	Verbose      bool `json:"verbose,omitempty"`       // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		ExcerptLimit: DefaultExcerptLimit,
		BatchLimit:   DefaultBatchLimit,
	}
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

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err == nil {
		_, hasPairs := keys["pairs"]
		_, hasPairsFile := keys["pairs_file"]
		cfg.PairsGiven = hasPairs || hasPairsFile
	}

	return &cfg, nil
}

// FromEnv reads the service settings from the environment. Unset variables
// leave their fields empty.
func FromEnv() Config {
	return Config{
		BaseURL: strings.TrimSpace(os.Getenv(EnvBaseURL)),
		Timeout: strings.TrimSpace(os.Getenv(EnvTimeout)),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config error: %s: failed %q check", jsonName(verrs[0].StructField()), verrs[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Pairs != "" && c.PairsFile != "" {
		return fmt.Errorf("config error: 'pairs' and 'pairs_file' are mutually exclusive")
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.PairsFile != "" {
		if _, err := os.Stat(c.PairsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: pairs file not found: %s", c.PairsFile)
		}
	}

	return nil
}

// TimeoutDuration parses Timeout. Empty means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'timeout' %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	return d, nil
}

// HasPairs reports whether any pairs source was given. An explicitly empty
// value counts and is left for validation to reject.
func (c *Config) HasPairs() bool {
	return c.PairsGiven || c.Pairs != "" || c.PairsFile != ""
}

// PairsText returns the inline pairs or the contents of PairsFile.
// It returns "" when neither is set.
func (c *Config) PairsText() (string, error) {
	if c.Pairs != "" {
		return c.Pairs, nil
	}
	if c.PairsFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.PairsFile)
	if err != nil {
		return "", fmt.Errorf("failed to read pairs file %s: %w", c.PairsFile, err)
	}
	return string(data), nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	// Pairs sources are one choice; only fall back when neither is set
	if !result.HasPairs() {
		result.Pairs = defaults.Pairs
		result.PairsFile = defaults.PairsFile
		result.PairsGiven = defaults.PairsGiven
	}

	// Int fields: use default if zero
	if result.ExcerptLimit == 0 {
		result.ExcerptLimit = defaults.ExcerptLimit
	}
	if result.BatchLimit == 0 {
		result.BatchLimit = defaults.BatchLimit
	}

	// Headers: defaults underneath, own values win
	if len(defaults.Headers) > 0 {
		merged := make(map[string]string, len(defaults.Headers)+len(result.Headers))
		for k, v := range defaults.Headers {
			merged[k] = v
		}
		for k, v := range result.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func jsonName(field string) string {
	switch field {
	case "BaseURL":
		return "base_url"
	case "ExcerptLimit":
		return "excerpt_limit"
	case "BatchLimit":
		return "batch_limit"
	}
	return strings.ToLower(field)
}
