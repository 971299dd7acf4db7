// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package api provides the HTTP surface of the analytics service.

The package is thin: handlers parse and validate the date range,
ask dashboard.Service for the result and wrap it in models.APIResponse. No
aggregation happens here.

Endpoints:

	GET /api/v1/analytics/overview      full dashboard
	GET /api/v1/analytics/funnel        conversion funnel
	GET /api/v1/analytics/kpis          KPIs vs. the preceding period
	GET /api/v1/analytics/retention     active / returning / retained users
	GET /api/v1/analytics/daily         dense daily series
	GET /api/v1/analytics/categories    category performance
	GET /api/v1/analytics/products      product performance
	GET /api/v1/analytics/engagement    engagement summary
	GET /api/v1/analytics/export/{view} CSV attachment of one view
	GET /api/v1/health, /live, /ready   probes
	GET /metrics                        Prometheus exposition

Every analytics endpoint accepts from and to as YYYY-MM-DD. Either may be
omitted, in which case the configured default window fills it in.

Middleware:

Request IDs, access logging, Prometheus instrumentation and gzip come from
internal/middleware. CORS (go-chi/cors) and rate limiting (go-chi/httprate)
are configured here from config.SecurityConfig.

Error responses use the codes declared in response.go; validation failures
carry the offending field in error.details.
*/
package api
