// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package models

import (
	"time"
)

// APIResponse is the envelope of every JSON endpoint.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"range": {"from": "2026-03-01", "to": "2026-03-07"}, ...},
//	  "metadata": {
//	    "timestamp": "2026-03-08T12:00:00Z",
//	    "query_time_ms": 12,
//	    "cached": true,
//	    "source": "event_log"
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "from (2026-03-09) must not be after to (2026-03-01)",
//	    "details": {"field": "from", "tag": "ltefield", "value": "2026-03-09"}
//	  },
//	  "metadata": {"timestamp": "2026-03-08T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and provenance of a response.
type Metadata struct {
	Timestamp   time.Time  `json:"timestamp"`
	QueryTimeMS int64      `json:"query_time_ms,omitempty"`
	Cached      bool       `json:"cached,omitempty"`
	Source      DataSource `json:"source,omitempty"`
	Range       *DateRange `json:"range,omitempty"`
	Degraded    bool       `json:"degraded,omitempty"`
}

// APIError is a machine-readable error.
//
// Codes: BAD_REQUEST, VALIDATION_ERROR, NOT_FOUND, METHOD_NOT_ALLOWED,
// RATE_LIMIT_EXCEEDED, INTERNAL_ERROR, SERVICE_UNAVAILABLE.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Uptime     float64           `json:"uptime_seconds"`
	Components map[string]string `json:"components,omitempty"`
}
