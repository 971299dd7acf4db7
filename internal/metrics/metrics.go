// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Aggregation Metrics
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Time spent computing an analytics view",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"view"}, // "dashboard", "funnel", "export"
	)

	AggregationEventsProcessed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_events_processed",
			Help:    "Number of events fed into one aggregation",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
	)

	// Event Store Metrics
	EventStoreFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_store_fetch_failures_total",
			Help: "Event store fetches that failed and were replaced by an empty result",
		},
		[]string{"operation"}, // "fetch_events", "fetch_counts"
	)

	EventStoreFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_store_fallback_total",
			Help: "Dashboard windows served from each data source",
		},
		[]string{"source"}, // "event_log", "aggregate_snapshot"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_hits_total",
			Help: "Total number of analytics cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_cache_misses_total",
			Help: "Total number of analytics cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records query duration and, on failure, a truncated error type.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAggregation records the duration of one view computation over n events.
func RecordAggregation(view string, events int, duration time.Duration) {
	AggregationDuration.WithLabelValues(view).Observe(duration.Seconds())
	AggregationEventsProcessed.Observe(float64(events))
}

// RecordFetchFailure counts an event store failure that degraded to an empty result.
func RecordFetchFailure(operation string) {
	EventStoreFetchFailures.WithLabelValues(operation).Inc()
}

// RecordDataSource counts which data source served a dashboard window.
func RecordDataSource(source string) {
	EventStoreFallbacks.WithLabelValues(source).Inc()
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}
