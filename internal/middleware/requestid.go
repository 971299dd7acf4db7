// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/maisonmai/analytics/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds client-supplied IDs before they reach the logs.
const maxRequestIDLen = 128

// RequestID reuses the upstream X-Request-ID (or generates a UUID), echoes it
// in the response, and stores it with a fresh correlation ID in the request
// context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.ContextWithNewCorrelationID(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}

// AccessLog writes one structured log line per request through the
// context logger, so request and correlation IDs are included.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rec, r)

		log := logging.Ctx(r.Context())
		event := log.Info()
		switch {
		case rec.statusCode >= 500:
			event = log.Error()
		case rec.statusCode >= 400:
			event = log.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", routePattern(r)).
			Int("status", rec.statusCode).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP request")
	})
}
