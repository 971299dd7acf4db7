// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/maisonmai/analytics.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8088,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:                   "", // fixture dataset
			MaxMemory:              "1GB",
			Threads:                0,
			PreserveInsertionOrder: true,
			SeedMockData:           false,
			Seed:                   42,
			SeedUsers:              80,
			SeedDays:               60,
		},
		Analytics: AnalyticsConfig{
			DefaultRangeDays: 30,
			MaxRangeDays:     366,
			CacheTTL:         time.Minute,
			WarmInterval:     0,
		},
		EventStore: EventStoreConfig{
			FetchTimeout: 10 * time.Second,
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  5,
			FailureRatio: 0.6,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are keys that accept a comma-separated string from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf keys.
var envMappings = map[string]string{
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	"duckdb_path":        "database.path",
	"duckdb_max_memory":  "database.max_memory",
	"duckdb_threads":     "database.threads",
	"seed_mock_data":     "database.seed_mock_data",
	"seed_mock_data_rng": "database.seed",
	"seed_mock_users":    "database.seed_users",
	"seed_mock_days":     "database.seed_days",

	"analytics_default_range_days": "analytics.default_range_days",
	"analytics_max_range_days":     "analytics.max_range_days",
	"analytics_cache_ttl":          "analytics.cache_ttl",
	"analytics_warm_interval":      "analytics.warm_interval",

	"event_store_fetch_timeout": "event_store.fetch_timeout",
	"event_store_max_requests":  "event_store.max_requests",
	"event_store_interval":      "event_store.interval",
	"event_store_timeout":       "event_store.timeout",
	"event_store_min_requests":  "event_store.min_requests",
	"event_store_failure_ratio": "event_store.failure_ratio",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf keys.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
