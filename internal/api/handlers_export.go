// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maisonmai/analytics/internal/analytics"
	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/validation"
)

// AnalyticsExport downloads one dashboard view as CSV.
//
// GET /api/v1/analytics/export/{view}?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// The file is rendered into memory first so a failure can still produce a
// JSON error instead of a truncated attachment.
func (h *Handler) AnalyticsExport(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	q := validation.ExportQuery{
		RangeQuery: validation.RangeQuery{
			From: r.URL.Query().Get("from"),
			To:   r.URL.Query().Get("to"),
		},
		View: view,
	}
	rng, verr := validation.ParseExport(q, h.dashboard.DefaultRange(), h.maxRangeDays())
	if verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	start := time.Now()
	table, err := h.dashboard.Export(r.Context(), view, rng)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := analytics.WriteCSV(&buf, table); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to render export", err)
		return
	}

	elapsed := time.Since(start)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", table.Filename))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Export-Rows", strconv.Itoa(len(table.Rows)))
	w.Header().Set("X-Export-Time-MS", strconv.FormatInt(elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("view", view).Msg("Failed to write export")
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("view", view).
		Str("range", rng.String()).
		Int("rows", len(table.Rows)).
		Dur("duration", elapsed).
		Msg("Export served")
}
