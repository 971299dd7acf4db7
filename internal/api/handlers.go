// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package api

import (
	"context"
	"time"

	"github.com/maisonmai/analytics/internal/config"
	"github.com/maisonmai/analytics/internal/dashboard"
)

// Version is reported by the health endpoints. Overridden at build time with
// -ldflags "-X github.com/maisonmai/analytics/internal/api.Version=...".
var Version = "dev"

// ReadinessChecker reports whether the event store can serve requests.
// eventstore.Resilient implements it.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_analytics.go: overview and per-view JSON endpoints
//   - handlers_export.go: CSV export download
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	dashboard *dashboard.Service
	config    *config.Config
	readiness ReadinessChecker
	startTime time.Time
}

// NewHandler creates a new API handler. readiness may be nil, in which case
// the service always reports ready.
//
// Example:
//
//	handler := api.NewHandler(svc, cfg, resilientStore)
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(svc *dashboard.Service, cfg *config.Config, readiness ReadinessChecker) *Handler {
	return &Handler{
		dashboard: svc,
		config:    cfg,
		readiness: readiness,
		startTime: time.Now(),
	}
}

func (h *Handler) maxRangeDays() int {
	if h.config == nil {
		return 0
	}
	return h.config.Analytics.MaxRangeDays
}
