// Package config handles configuration for the terminal client,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the ResumeCraft CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request deadline for API calls.
//
// Units: RequestTimeout is a time.Duration (e.g., 15*time.Second).
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
