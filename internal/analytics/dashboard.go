// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"time"

	"github.com/maisonmai/analytics/internal/models"
)

// BuildDashboard computes every view for r from current, with KPI changes
// measured against previous (the comparison window). Event-derived views are
// empty when current falls back to its aggregate snapshot.
func BuildDashboard(r models.DateRange, current, previous Source, now time.Time) models.Dashboard {
	events := current.Events
	if current.Kind() == models.SourceAggregateSnapshot {
		events = nil
	}

	return models.Dashboard{
		Range:       r,
		Comparison:  ComparisonRange(r),
		Source:      current.Kind(),
		KPIs:        ComputeKPIs(current, previous),
		Funnel:      ComputeFunnel(current),
		Retention:   ComputeRetention(events),
		Daily:       FillDailyGaps(ComputeDaily(events), r),
		Categories:  ComputeCategoryStats(events),
		Products:    ComputeProductStats(events),
		Engagement:  ComputeEngagement(events),
		GeneratedAt: now.UTC(),
		Degraded:    current.Degraded || previous.Degraded,
	}
}
