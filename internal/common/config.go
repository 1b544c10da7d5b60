// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the Folio client
type Config struct {
	Environment string        `toml:"environment"`
	API         APIConfig     `toml:"api"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	CLI         CLIConfig     `toml:"cli"`
}

// APIConfig holds backend API connection configuration
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// StorageConfig holds the local credential/cache store configuration
type StorageConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// CLIConfig holds presentation settings for CLI output
type CLIConfig struct {
	DisplayCurrency string `toml:"display_currency"`
	PageSize        int    `toml:"page_size"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		API: APIConfig{
			BaseURL:   "http://localhost:3000/api/v1",
			RateLimit: 10,
			Timeout:   "30s",
		},
		Storage: StorageConfig{
			Path: "data/folio",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		CLI: CLIConfig{
			DisplayCurrency: "MYR",
			PageSize:        10,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	validateDisplayCurrency(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if url := os.Getenv("FOLIO_API_BASE_URL"); url != "" {
		config.API.BaseURL = url
	}

	if timeout := os.Getenv("FOLIO_API_TIMEOUT"); timeout != "" {
		config.API.Timeout = timeout
	}

	if rl := os.Getenv("FOLIO_API_RATE_LIMIT"); rl != "" {
		if n, err := strconv.Atoi(rl); err == nil {
			config.API.RateLimit = n
		}
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FOLIO_DATA_PATH"); path != "" {
		config.Storage.Path = filepath.Join(path, "folio")
	}

	if dc := os.Getenv("FOLIO_DISPLAY_CURRENCY"); dc != "" {
		config.CLI.DisplayCurrency = strings.ToUpper(dc)
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// validateDisplayCurrency normalizes DisplayCurrency to an upper-case
// 3-letter code, defaulting to "MYR".
func validateDisplayCurrency(config *Config) {
	dc := strings.ToUpper(strings.TrimSpace(config.CLI.DisplayCurrency))
	if len(dc) != 3 {
		dc = "MYR"
	}
	config.CLI.DisplayCurrency = dc
}
