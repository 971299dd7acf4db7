// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"testing"
	"time"

	"github.com/maisonmai/analytics/internal/models"
)

func TestBuildDashboard_EventLog(t *testing.T) {
	t.Parallel()

	r := dr("2026-03-01", "2026-03-03")
	d := BuildDashboard(r, EventSource(threeUserEvents()), EventSource(nil), day(4, time.Hour))

	assertEqual(t, "source", d.Source, models.SourceEventLog)
	assertEqual(t, "comparison", d.Comparison.String(), "2026-02-26_2026-02-28")
	assertEqual(t, "funnel accounts", d.Funnel[0].Users, 3)
	assertEqual(t, "kpi users", d.KPIs.TotalUsers.Value, int64(3))
	assertFloat(t, "kpi users change", d.KPIs.TotalUsers.Change, 100)
	assertEqual(t, "return rate", d.Retention.ReturnRate, "33.3")
	assertEqual(t, "daily rows", len(d.Daily), 3)
	assertEqual(t, "gap day", d.Daily[1], models.DailyMetric{Date: "2026-03-02"})
	assertEqual(t, "categories", len(d.Categories), 1)
	assertEqual(t, "engagement events", d.Engagement.TotalEvents, 6)
	assertEqual(t, "generated at", d.GeneratedAt, day(4, time.Hour))
}

func TestBuildDashboard_SnapshotFallback(t *testing.T) {
	t.Parallel()

	r := dr("2026-03-01", "2026-03-03")
	snap := &models.AggregateCounts{TotalUsers: 8, TotalProfiles: 4, TotalGiftIdeas: 6}
	d := BuildDashboard(r, Source{Snapshot: snap}, Source{Snapshot: &models.AggregateCounts{TotalUsers: 4}}, day(4))

	assertEqual(t, "source", d.Source, models.SourceAggregateSnapshot)
	assertEqual(t, "funnel from snapshot", d.Funnel[0].Users, 8)
	assertFloat(t, "profile percent", d.Funnel[1].Percent, 50)
	assertEqual(t, "kpi users", d.KPIs.TotalUsers.Value, int64(8))
	assertFloat(t, "kpi change", d.KPIs.TotalUsers.Change, 100)
	assertEqual(t, "no retention without events", d.Retention.TotalUsers, 0)
	assertEqual(t, "retention rate", d.Retention.ReturnRate, "0.0")
	assertEqual(t, "daily still dense", len(d.Daily), 3)
	assertEqual(t, "no products", len(d.Products), 0)
}

func TestComputeEngagement(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		ev("", "anon", models.EventPageView, day(1)),
		ev("u1", "s1", models.EventPageView, day(1)),
		generated("u1", "s1", day(1), idea("a", "home"), idea("b", "home"), idea("c", "home")),
		generated("u1", "s2", day(2), idea("d", "home")),
		ev("u2", "s3", models.EventAccountCreated, day(2)),
	}

	e := ComputeEngagement(events)
	assertEqual(t, "TotalEvents", e.TotalEvents, 5)
	assertEqual(t, "ActiveUsers", e.ActiveUsers, 2)
	assertEqual(t, "Sessions", e.Sessions, 4)
	assertEqual(t, "GenerationEvents", e.GenerationEvents, 2)
	assertFloat(t, "EventsPerUser", e.EventsPerUser, 2)
	assertFloat(t, "IdeasPerGeneration", e.IdeasPerGeneration, 2)
	assertFloat(t, "AvgActiveDays", e.AvgActiveDays, 1.5)

	empty := ComputeEngagement(nil)
	assertFloat(t, "empty EventsPerUser", empty.EventsPerUser, 0)
	assertFloat(t, "empty IdeasPerGeneration", empty.IdeasPerGeneration, 0)
}

func TestBuildDashboard_DegradedWindow(t *testing.T) {
	t.Parallel()

	r := dr("2026-03-01", "2026-03-03")
	healthy := BuildDashboard(r, EventSource(threeUserEvents()), EventSource(nil), day(4))
	assertEqual(t, "healthy", healthy.Degraded, false)

	current := BuildDashboard(r, Source{Snapshot: &models.AggregateCounts{}, Degraded: true}, EventSource(nil), day(4))
	assertEqual(t, "current degraded", current.Degraded, true)

	previous := BuildDashboard(r, EventSource(threeUserEvents()), Source{Snapshot: &models.AggregateCounts{}, Degraded: true}, day(4))
	assertEqual(t, "previous degraded", previous.Degraded, true)
}
