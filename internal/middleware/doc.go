// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package middleware provides HTTP middleware for the analytics API.

Every middleware has the chi signature func(http.Handler) http.Handler and
can be passed to chi.Router.Use directly.

Key Components:

  - RequestID: reuses or generates X-Request-ID and seeds the logging context
  - AccessLog: one zerolog line per request, level by status class
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern
  - Compression: gzip for clients that accept it

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

RequestID must run before AccessLog so log lines carry the IDs.
*/
package middleware
