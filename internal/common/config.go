// Package common provides shared utilities for the stock comparison service
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the service
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Compare     CompareConfig `toml:"compare"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD EODHDConfig `toml:"eodhd"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// CompareConfig holds the dashboard form defaults shown before the first run.
type CompareConfig struct {
	DefaultTicker1  string `toml:"default_ticker1"`
	DefaultTicker2  string `toml:"default_ticker2"`
	DefaultFrom     string `toml:"default_from"`
	DefaultTo       string `toml:"default_to"`
	DefaultCurrency string `toml:"default_currency"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Compare: CompareConfig{
			DefaultTicker1:  "AAPL",
			DefaultTicker2:  "MSFT",
			DefaultFrom:     "2023-01-01",
			DefaultTo:       "2025-01-01",
			DefaultCurrency: "USD",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
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

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKCOMPARE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STOCKCOMPARE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STOCKCOMPARE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKCOMPARE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("STOCKCOMPARE_EODHD_BASE_URL"); url != "" {
		config.Clients.EODHD.BaseURL = url
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveAPIKey resolves the EODHD API key from environment, falling back to
// the config file value.
func ResolveAPIKey(fallback string) (string, error) {
	for _, name := range []string{"EODHD_API_KEY", "STOCKCOMPARE_EODHD_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("EODHD API key not found in environment or config")
}
