// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"sort"

	"github.com/maisonmai/analytics/internal/models"
)

type dayBucket struct {
	users  distinct
	metric models.DailyMetric
}

// ComputeDaily buckets events by UTC calendar date. Only dates with at least
// one event produce a row; rows are sorted ascending by date.
func ComputeDaily(events []models.Event) []models.DailyMetric {
	buckets := make(map[string]*dayBucket)
	for i := range events {
		e := &events[i]
		date := DateKey(e.Timestamp)
		b, ok := buckets[date]
		if !ok {
			b = &dayBucket{users: distinct{}, metric: models.DailyMetric{Date: date}}
			buckets[date] = b
		}
		b.users.add(e.UserID)
		switch e.Type {
		case models.EventPageView:
			b.metric.PageViews++
		case models.EventIdeasGenerated:
			b.metric.IdeasGenerated += len(e.Ideas())
		case models.EventOutboundClick:
			b.metric.OutboundClicks++
		}
	}

	series := make([]models.DailyMetric, 0, len(buckets))
	for _, b := range buckets {
		b.metric.ActiveUsers = len(b.users)
		series = append(series, b.metric)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// FillDailyGaps returns a dense series covering every day of r, using zero
// rows for days missing from series. Rows outside r are dropped.
func FillDailyGaps(series []models.DailyMetric, r models.DateRange) []models.DailyMetric {
	byDate := make(map[string]models.DailyMetric, len(series))
	for _, m := range series {
		byDate[m.Date] = m
	}

	dense := make([]models.DailyMetric, 0, r.Days())
	for d := StartOfDay(r.From); !d.After(r.To); d = d.AddDate(0, 0, 1) {
		key := DateKey(d)
		if m, ok := byDate[key]; ok {
			dense = append(dense, m)
			continue
		}
		dense = append(dense, models.DailyMetric{Date: key})
	}
	return dense
}
