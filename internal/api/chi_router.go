// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maisonmai/analytics/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMiddleware}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Get("/overview", router.handler.AnalyticsOverview)
		r.Get("/funnel", router.handler.AnalyticsFunnel)
		r.Get("/kpis", router.handler.AnalyticsKPIs)
		r.Get("/retention", router.handler.AnalyticsRetention)
		r.Get("/daily", router.handler.AnalyticsDaily)
		r.Get("/categories", router.handler.AnalyticsCategories)
		r.Get("/products", router.handler.AnalyticsProducts)
		r.Get("/engagement", router.handler.AnalyticsEngagement)

		r.With(router.chiMiddleware.RateLimitExport()).Get("/export/{view}", router.handler.AnalyticsExport)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
