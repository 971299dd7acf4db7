// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package config loads and validates the analytics service configuration.

# Configuration Sources

Configuration is layered with koanf, later sources overriding earlier ones:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths
 3. Environment variables, through an explicit name mapping

Unmapped environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, ENVIRONMENT

Database:
  - DUCKDB_PATH: DuckDB file (empty = in-memory demo fixture)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - SEED_MOCK_DATA, SEED_MOCK_DATA_RNG, SEED_MOCK_USERS, SEED_MOCK_DAYS

Analytics:
  - ANALYTICS_DEFAULT_RANGE_DAYS (default 30)
  - ANALYTICS_MAX_RANGE_DAYS (default 366)
  - ANALYTICS_CACHE_TTL (default 1m, 0 disables)

Event store circuit breaker:
  - EVENT_STORE_FETCH_TIMEOUT, EVENT_STORE_MAX_REQUESTS, EVENT_STORE_INTERVAL
  - EVENT_STORE_TIMEOUT, EVENT_STORE_MIN_REQUESTS, EVENT_STORE_FAILURE_RATIO

Security:
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
    DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
