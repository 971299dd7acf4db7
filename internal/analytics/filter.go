// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"time"

	"github.com/maisonmai/analytics/internal/models"
)

// StartOfDay returns 00:00:00 UTC of t's UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's UTC calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DateKey returns the UTC calendar date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.UTC().Format(models.DateLayout)
}

// FilterByRange keeps events with from 00:00:00 <= timestamp <= to 23:59:59.999999999.
// Either bound may be nil (unbounded on that side). With both nil the input is
// returned as is; otherwise a new slice is returned and events is not modified.
func FilterByRange(events []models.Event, from, to *time.Time) []models.Event {
	if from == nil && to == nil {
		return events
	}

	var lo, hi time.Time
	if from != nil {
		lo = StartOfDay(*from)
	}
	if to != nil {
		hi = EndOfDay(*to)
	}

	out := make([]models.Event, 0, len(events))
	for i := range events {
		ts := events[i].Timestamp
		if from != nil && ts.Before(lo) {
			continue
		}
		if to != nil && ts.After(hi) {
			continue
		}
		out = append(out, events[i])
	}
	return out
}
