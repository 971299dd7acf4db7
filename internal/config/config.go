// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package config

import (
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Analytics  AnalyticsConfig  `koanf:"analytics"`
	EventStore EventStoreConfig `koanf:"event_store"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// DatabaseConfig holds DuckDB settings. An empty Path runs the service on the
// in-memory fixture dataset instead of DuckDB.
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`                  // 0 = use NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // DuckDB default is true
	SeedMockData           bool   `koanf:"seed_mock_data"`           // Load the demo fixture on startup
	Seed                   uint64 `koanf:"seed"`                     // Fixture RNG seed
	SeedUsers              int    `koanf:"seed_users"`
	SeedDays               int    `koanf:"seed_days"`
}

// AnalyticsConfig holds dashboard aggregation settings
type AnalyticsConfig struct {
	// DefaultRangeDays is the window used when a request omits from/to.
	DefaultRangeDays int `koanf:"default_range_days"`

	// MaxRangeDays caps the span of a single request.
	MaxRangeDays int `koanf:"max_range_days"`

	// CacheTTL is how long a computed dashboard is reused. Zero disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// WarmInterval rebuilds the default-range dashboard in the background so
	// the first page load hits the cache. Zero disables warming.
	WarmInterval time.Duration `koanf:"warm_interval"`
}

// EventStoreConfig tunes the circuit breaker wrapped around the event store.
type EventStoreConfig struct {
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// Breaker settings map to gobreaker.Settings.
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds cross-origin and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDuckDB reports whether a DuckDB file is configured.
func (c *DatabaseConfig) UsesDuckDB() bool {
	return c.Path != ""
}
