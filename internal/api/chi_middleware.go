// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/maisonmai/analytics/internal/config"
	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/metrics"
	"github.com/maisonmai/analytics/internal/middleware"
)

// ChiMiddlewareConfig holds configuration for Chi middleware factories.
type ChiMiddlewareConfig struct {
	// CORS configuration
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSExposedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	// Rate limiting configuration
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
	RateLimitKeyFunc  httprate.KeyFunc
}

// DefaultChiMiddlewareConfig returns a secure default configuration.
// CORS origins default to empty, requiring explicit configuration.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins:   []string{},
		CORSAllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		CORSExposedHeaders:   []string{"Content-Disposition", middleware.RequestIDHeader, "X-Export-Rows"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: false,
	}
}

// NewChiMiddlewareFromConfig builds the middleware set from the security
// section of the service config.
func NewChiMiddlewareFromConfig(cfg *config.SecurityConfig) *ChiMiddleware {
	mc := DefaultChiMiddlewareConfig()
	mc.CORSAllowedOrigins = cfg.CORSOrigins
	mc.RateLimitRequests = cfg.RateLimitReqs
	mc.RateLimitWindow = cfg.RateLimitWindow
	mc.RateLimitDisabled = cfg.RateLimitDisabled
	return NewChiMiddleware(mc)
}

// ChiMiddleware provides Chi-compatible middleware factories.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a new Chi middleware factory with the given configuration.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   config.CORSAllowedMethods,
		AllowedHeaders:   config.CORSAllowedHeaders,
		ExposedHeaders:   config.CORSExposedHeaders,
		AllowCredentials: config.CORSAllowCredentials,
		MaxAge:           config.CORSMaxAge,
	})

	return &ChiMiddleware{
		config: config,
		cors:   corsHandler,
	}
}

// CORS returns a Chi-compatible CORS middleware using go-chi/cors.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the default per-client limiter from configuration.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitConfig{
		Requests: m.config.RateLimitRequests,
		Window:   m.config.RateLimitWindow,
	})
}

// RateLimitConfig defines rate limit parameters for specific endpoints.
type RateLimitConfig struct {
	// Requests is the number of requests allowed in the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
}

// Endpoint-specific rate limit configurations
var (
	// RateLimitExport is moderate limiting for CSV exports, which serialize a
	// full view per request.
	RateLimitExport = RateLimitConfig{Requests: 30, Window: time.Minute}

	// RateLimitHealth is permissive for monitoring probes.
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}
)

// RateLimitCustom returns a rate limiter with custom configuration. Limited
// requests receive the standard JSON error envelope.
func (m *ChiMiddleware) RateLimitCustom(config RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || config.Requests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	keyFunc := m.config.RateLimitKeyFunc
	if keyFunc == nil {
		keyFunc = httprate.KeyByIP
	}

	return httprate.Limit(
		config.Requests,
		config.Window,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(rateLimited),
	)
}

// RateLimitExport returns a rate limiter for export downloads.
func (m *ChiMiddleware) RateLimitExport() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitExport)
}

// RateLimitHealth returns a rate limiter for health endpoints.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitHealth)
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	logging.Ctx(r.Context()).Warn().
		Str("path", sanitizeLogValue(r.URL.Path)).
		Str("remote_addr", r.RemoteAddr).
		Msg("Rate limit exceeded")
	metrics.APIRateLimitHits.WithLabelValues(routeLabel(r)).Inc()
	respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimitExceeded, "Too many requests, slow down", nil)
}

// routeLabel prefers the chi route pattern to keep label cardinality bounded.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// APISecurityHeaders returns a middleware that adds security headers to API responses.
//
// Headers added:
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - Referrer-Policy: strict-origin-when-cross-origin
//   - Strict-Transport-Security, only over HTTPS or behind a TLS-terminating proxy
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
