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

func TestComputeDaily(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		clicked("u2", "s2", day(5, 10*time.Hour), "a", "home"),
		ev("u1", "s1", models.EventPageView, day(2, 23*time.Hour)),
		ev("u1", "s1", models.EventPageView, day(2, 23*time.Hour+30*time.Minute)),
		ev("", "anon", models.EventPageView, day(2, 8*time.Hour)),
		generated("u2", "s2", day(2, 9*time.Hour), idea("a", "home"), idea("b", "home")),
		generated("u2", "s2", day(5, 9*time.Hour), idea("c", "books")),
	}

	got := ComputeDaily(events)
	want := []models.DailyMetric{
		{Date: "2026-03-02", ActiveUsers: 2, PageViews: 3, IdeasGenerated: 2},
		{Date: "2026-03-05", ActiveUsers: 1, IdeasGenerated: 1, OutboundClicks: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("ComputeDaily returned %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		assertEqual(t, want[i].Date, got[i], want[i])
	}
}

func TestComputeDaily_BucketsByUTCDate(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*3600)
	// 08:00 on the 3rd in Tokyo is 23:00 on the 2nd in UTC.
	events := []models.Event{ev("u1", "s1", models.EventPageView, time.Date(2026, 3, 3, 8, 0, 0, 0, tokyo))}

	got := ComputeDaily(events)
	if len(got) != 1 || got[0].Date != "2026-03-02" {
		t.Errorf("expected a single 2026-03-02 bucket, got %+v", got)
	}
}

func TestComputeDaily_Empty(t *testing.T) {
	t.Parallel()

	if got := ComputeDaily(nil); len(got) != 0 {
		t.Errorf("expected no rows, got %+v", got)
	}
}

func TestFillDailyGaps(t *testing.T) {
	t.Parallel()

	sparse := []models.DailyMetric{
		{Date: "2026-02-27", PageViews: 9}, // outside range
		{Date: "2026-03-02", PageViews: 4},
	}
	dense := FillDailyGaps(sparse, dr("2026-03-01", "2026-03-04"))

	wantDates := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04"}
	if len(dense) != len(wantDates) {
		t.Fatalf("expected %d rows, got %+v", len(wantDates), dense)
	}
	for i, d := range wantDates {
		assertEqual(t, "date", dense[i].Date, d)
	}
	assertEqual(t, "kept value", dense[1].PageViews, 4)
	assertEqual(t, "zero filled", dense[2], models.DailyMetric{Date: "2026-03-03"})
}
