// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/models"
	"github.com/maisonmai/analytics/internal/validation"
)

// parseRange resolves the from/to query parameters, writing a 400 and
// returning false when they are invalid.
func (h *Handler) parseRange(w http.ResponseWriter, r *http.Request) (models.DateRange, bool) {
	q := validation.RangeQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	rng, verr := validation.ParseRange(q, h.dashboard.DefaultRange(), h.maxRangeDays())
	if verr != nil {
		respondValidationError(w, r, verr)
		return models.DateRange{}, false
	}
	return rng, true
}

// serveView builds (or loads) the dashboard for the requested range and
// responds with the part selected by pick.
func (h *Handler) serveView(w http.ResponseWriter, r *http.Request, view string, pick func(*models.Dashboard) interface{}) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	start := time.Now()
	d, cached, err := h.dashboard.Overview(r.Context(), rng)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("view", view).
		Str("range", rng.String()).
		Bool("cached", cached).
		Msg("Analytics view served")

	respondSuccess(w, pick(&d), models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Cached:      cached,
		Source:      d.Source,
		Range:       &d.Range,
		Degraded:    d.Degraded,
	})
}

func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Event store did not respond in time", err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to compute analytics", err)
}

// AnalyticsOverview returns every view of the dashboard for the range.
//
// GET /api/v1/analytics/overview?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) AnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "overview", func(d *models.Dashboard) interface{} { return d })
}

// AnalyticsFunnel returns the seven-stage conversion funnel.
func (h *Handler) AnalyticsFunnel(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "funnel", func(d *models.Dashboard) interface{} { return d.Funnel })
}

// AnalyticsKPIs returns the KPI set compared against the preceding period.
func (h *Handler) AnalyticsKPIs(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "kpis", func(d *models.Dashboard) interface{} {
		return struct {
			Comparison models.DateRange `json:"comparison"`
			KPIs       models.KPISet    `json:"kpis"`
		}{d.Comparison, d.KPIs}
	})
}

// AnalyticsRetention returns the active / returning / retained user counts.
func (h *Handler) AnalyticsRetention(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "retention", func(d *models.Dashboard) interface{} { return d.Retention })
}

// AnalyticsDaily returns one row per calendar day of the range.
func (h *Handler) AnalyticsDaily(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "daily", func(d *models.Dashboard) interface{} { return d.Daily })
}

// AnalyticsCategories returns recommendation performance per category.
func (h *Handler) AnalyticsCategories(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "categories", func(d *models.Dashboard) interface{} { return d.Categories })
}

// AnalyticsProducts returns recommendation performance per gift idea.
func (h *Handler) AnalyticsProducts(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "products", func(d *models.Dashboard) interface{} { return d.Products })
}

// AnalyticsEngagement returns the engagement summary.
func (h *Handler) AnalyticsEngagement(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "engagement", func(d *models.Dashboard) interface{} { return d.Engagement })
}
