// Package config provides configuration loading and validation for the job board.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/jobboard/internal/ranking"
)

// Default values
const (
	DefaultPort         = 8080
	DefaultCampusLimit  = ranking.DefaultCampusLimit
	DefaultGeneralLimit = ranking.DefaultGeneralLimit
	DefaultWindowMonths = 6
	DefaultRecentLimit  = 10
	DefaultStrategy     = ranking.StrategySkills
)

// Config represents the job board configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Ranking
	CampusLimit  int    `json:"campus_limit,omitempty"`  // Maximum on-campus opportunities
	GeneralLimit int    `json:"general_limit,omitempty"` // Maximum general fallback opportunities
	Strategy     string `json:"strategy,omitempty"`      // Default score strategy (skills, composite)

	// Analytics
	WindowMonths int `json:"window_months,omitempty"` // Trailing months in the monthly trend
	RecentLimit  int `json:"recent_limit,omitempty"`  // Events in recent activity

	// Logging
	LogJSON bool `json:"log_json,omitempty"` // JSON log encoding
	Debug   bool `json:"debug,omitempty"`    // Debug log level
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:         DefaultPort,
		CampusLimit:  DefaultCampusLimit,
		GeneralLimit: DefaultGeneralLimit,
		Strategy:     DefaultStrategy,
		WindowMonths: DefaultWindowMonths,
		RecentLimit:  DefaultRecentLimit,
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

	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the optional
// JSON file, then DATABASE_URL and PORT from the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() error {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.DatabaseURL = url
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("config error: invalid PORT %q: %w", port, err)
		}
		c.Port = p
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CampusLimit < 0 {
		return fmt.Errorf("config error: 'campus_limit' must be non-negative")
	}
	if c.GeneralLimit < 0 {
		return fmt.Errorf("config error: 'general_limit' must be non-negative")
	}
	if c.WindowMonths < 0 {
		return fmt.Errorf("config error: 'window_months' must be non-negative")
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("config error: 'recent_limit' must be non-negative")
	}
	if _, err := ranking.StrategyByName(c.Strategy); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CampusLimit == 0 {
		result.CampusLimit = defaults.CampusLimit
	}
	if result.GeneralLimit == 0 {
		result.GeneralLimit = defaults.GeneralLimit
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.WindowMonths == 0 {
		result.WindowMonths = defaults.WindowMonths
	}
	if result.RecentLimit == 0 {
		result.RecentLimit = defaults.RecentLimit
	}

	// Bool fields: true wins
	result.LogJSON = result.LogJSON || defaults.LogJSON
	result.Debug = result.Debug || defaults.Debug

	return result
}
