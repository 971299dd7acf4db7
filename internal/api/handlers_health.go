// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package api

import (
	"net/http"
	"time"

	"github.com/maisonmai/analytics/internal/models"
)

// Health returns overall status with per-component detail. It always
// answers 200; use /ready for gating traffic.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	components := map[string]string{"event_store": "ok"}

	if h.readiness != nil {
		components["circuit_breaker"] = h.readiness.State()
		if err := h.readiness.Ready(r.Context()); err != nil {
			status = "degraded"
			components["event_store"] = err.Error()
		}
	}

	respondSuccess(w, models.HealthStatus{
		Status:     status,
		Version:    Version,
		Uptime:     time.Since(h.startTime).Seconds(),
		Components: components,
	}, models.Metadata{})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the event store is reachable and its breaker is not open
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := true
	var reason string
	if h.readiness != nil {
		if err := h.readiness.Ready(r.Context()); err != nil {
			ready = false
			reason = err.Error()
		}
	}

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	data := map[string]interface{}{
		"ready_to_serve": ready,
		"uptime":         time.Since(h.startTime).Seconds(),
	}
	if reason != "" {
		data["reason"] = reason
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}
