// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package main is the entry point for the MaisonMai analytics server.

The server aggregates gift-recommendation events (searches, profile
creation, idea generation, saves and shop clicks) into the read-only
dashboard views used by the MaisonMai admin console: funnel, KPIs with
period-over-period comparison, retention, daily activity, category and
product performance, engagement, and CSV exports of each.

# Application Architecture

Every long-running component runs under a Suture v4 supervisor tree:

	RootSupervisor ("maisonmai-analytics")
	├── DataSupervisor ("data-layer")
	│   ├── cache-janitor  (dashboard cache expiry sweep)
	│   └── cache-warmer   (optional, ANALYTICS_WARM_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── http-server    (Chi router, /api/v1)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON or console output
 3. Event store: DuckDB when DUCKDB_PATH is set, otherwise the in-memory demo fixture
 4. Resilience: gobreaker circuit breaker and per-fetch timeout around the store
 5. Dashboard service: aggregation, TTL cache and singleflight deduplication
 6. HTTP: Chi router with CORS, rate limiting, metrics and gzip
 7. Supervisor tree

# Configuration

Configuration is loaded via Koanf v2 (highest priority wins):

	Priority: Environment variables > Config file (CONFIG_PATH) > Defaults

Core environment variables:

	HTTP_PORT=8088                 # HTTP server port
	LOG_LEVEL=info                 # trace, debug, info, warn, error
	LOG_FORMAT=json                # json or console

	DUCKDB_PATH=/data/analytics.duckdb
	SEED_MOCK_DATA=true            # load the demo dataset into an empty database

	ANALYTICS_DEFAULT_RANGE_DAYS=30
	ANALYTICS_MAX_RANGE_DAYS=366
	ANALYTICS_CACHE_TTL=1m         # 0 disables caching
	ANALYTICS_WARM_INTERVAL=0      # e.g. 45s to keep the default range warm

	CORS_ORIGINS=https://admin.maisonmai.example
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests (10s timeout), the supervisor stops the remaining services, and the
database is closed.

# Example Usage

Local development on the built-in fixture:

	export LOG_FORMAT=console
	./maisonmai-analytics

DuckDB with demo data:

	export DUCKDB_PATH=./analytics.duckdb
	export SEED_MOCK_DATA=true
	./maisonmai-analytics
*/
package main
