// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"github.com/maisonmai/analytics/internal/models"
)

// Source is the input for one period: the raw event log and, optionally, an
// aggregate snapshot of persisted entity counts for the same window.
// Degraded marks data substituted for a failed fetch.
type Source struct {
	Events   []models.Event
	Snapshot *models.AggregateCounts
	Degraded bool
}

// EventSource wraps an event log with no snapshot.
func EventSource(events []models.Event) Source {
	return Source{Events: events}
}

// Kind applies the selection rule: the event log is preferred, the snapshot
// is used only when the event log is empty and a snapshot was supplied.
func (s Source) Kind() models.DataSource {
	if len(s.Events) == 0 && s.Snapshot != nil {
		return models.SourceAggregateSnapshot
	}
	return models.SourceEventLog
}
