// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package metrics defines the Prometheus instrumentation of the analytics
service. All collectors are registered with the default registry through
promauto and exposed at /metrics by the API router.

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Database:
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table, error_type}

Aggregation:
  - aggregation_duration_seconds{view}
  - aggregation_events_processed

Event store:
  - event_store_fetch_failures_total{operation}: failures answered with an
    empty result
  - event_store_fallback_total{source}: event_log vs aggregate_snapshot

Cache and circuit breaker:
  - analytics_cache_hits_total{cache_type}, analytics_cache_misses_total{cache_type}
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}
*/
package metrics
