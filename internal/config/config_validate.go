// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateAnalytics(); err != nil {
		return err
	}
	if err := c.validateEventStore(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	if c.Database.UsesDuckDB() && strings.TrimSpace(c.Database.MaxMemory) == "" {
		return fmt.Errorf("DUCKDB_MAX_MEMORY is required when DUCKDB_PATH is set")
	}
	if c.Database.SeedUsers < 1 || c.Database.SeedDays < 1 {
		return fmt.Errorf("SEED_MOCK_USERS and SEED_MOCK_DAYS must be at least 1")
	}
	return nil
}

const maxRangeDaysLimit = 3660

func (c *Config) validateAnalytics() error {
	a := c.Analytics
	if a.MaxRangeDays < 1 || a.MaxRangeDays > maxRangeDaysLimit {
		return fmt.Errorf("ANALYTICS_MAX_RANGE_DAYS must be between 1 and %d", maxRangeDaysLimit)
	}
	if a.DefaultRangeDays < 1 || a.DefaultRangeDays > a.MaxRangeDays {
		return fmt.Errorf("ANALYTICS_DEFAULT_RANGE_DAYS must be between 1 and ANALYTICS_MAX_RANGE_DAYS (%d)", a.MaxRangeDays)
	}
	if a.CacheTTL < 0 {
		return fmt.Errorf("ANALYTICS_CACHE_TTL must not be negative")
	}
	if a.WarmInterval < 0 {
		return fmt.Errorf("ANALYTICS_WARM_INTERVAL must not be negative")
	}
	if a.WarmInterval > 0 && a.CacheTTL == 0 {
		return fmt.Errorf("ANALYTICS_WARM_INTERVAL requires ANALYTICS_CACHE_TTL > 0")
	}
	return nil
}

func (c *Config) validateEventStore() error {
	es := c.EventStore
	if es.FetchTimeout <= 0 {
		return fmt.Errorf("EVENT_STORE_FETCH_TIMEOUT must be positive")
	}
	if es.FailureRatio <= 0 || es.FailureRatio > 1 {
		return fmt.Errorf("EVENT_STORE_FAILURE_RATIO must be in (0, 1]")
	}
	if es.Timeout <= 0 {
		return fmt.Errorf("EVENT_STORE_TIMEOUT must be positive")
	}
	return nil
}

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

func (c *Config) validateCORS() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true when a production deployment accepts any
// origin. Logged at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Server.IsProduction() && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
