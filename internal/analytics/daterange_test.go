// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/maisonmai/analytics/internal/models"
)

func dr(from, to string) models.DateRange {
	f, _ := time.Parse(models.DateLayout, from)
	t, _ := time.Parse(models.DateLayout, to)
	return models.DateRange{From: f, To: t}
}

func TestComparisonRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  models.DateRange
		expect models.DateRange
	}{
		{"single day", dr("2026-03-10", "2026-03-10"), dr("2026-03-09", "2026-03-09")},
		{"one week", dr("2026-03-08", "2026-03-14"), dr("2026-03-01", "2026-03-07")},
		{"crosses month", dr("2026-03-01", "2026-03-31"), dr("2026-01-29", "2026-02-28")},
		{"crosses year", dr("2026-01-01", "2026-01-10"), dr("2025-12-22", "2025-12-31")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComparisonRange(tt.input)
			if !got.From.Equal(tt.expect.From) || !got.To.Equal(tt.expect.To) {
				t.Errorf("ComparisonRange(%s) = %s, want %s", tt.input, got, tt.expect)
			}
			if got.Days() != tt.input.Days() {
				t.Errorf("comparison length %d != range length %d", got.Days(), tt.input.Days())
			}
			if !got.To.AddDate(0, 0, 1).Equal(tt.input.From) {
				t.Error("comparison range must end the day before the range starts")
			}
		})
	}
}

func TestNewDateRange(t *testing.T) {
	t.Parallel()

	r, err := NewDateRange(day(3, 17*time.Hour), day(5, time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.From.Equal(day(3)) || !r.To.Equal(day(5)) {
		t.Errorf("expected normalized days, got %s", r)
	}

	_, err = NewDateRange(day(5), day(3))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestLastNDays(t *testing.T) {
	t.Parallel()

	now := day(30, 14*time.Hour)
	r := LastNDays(30, now)
	assertEqual(t, "range", r.String(), "2026-03-01_2026-03-30")
	assertEqual(t, "days", r.Days(), 30)

	assertEqual(t, "zero days", LastNDays(0, now).String(), "2026-03-30_2026-03-30")
}

func TestRangeController(t *testing.T) {
	t.Parallel()

	rc := NewRangeController(7, day(14, 9*time.Hour))
	assertEqual(t, "initial current", rc.Current().String(), "2026-03-08_2026-03-14")
	assertEqual(t, "initial comparison", rc.Comparison().String(), "2026-03-01_2026-03-07")

	if err := rc.SetRange(day(10), day(11)); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	assertEqual(t, "current", rc.Current().String(), "2026-03-10_2026-03-11")
	assertEqual(t, "comparison", rc.Comparison().String(), "2026-03-08_2026-03-09")

	if err := rc.SetRange(day(20), day(10)); err == nil {
		t.Fatal("expected error for reversed range")
	}
	assertEqual(t, "unchanged after error", rc.Current().String(), "2026-03-10_2026-03-11")

	rc.SetPreset(3, day(20))
	assertEqual(t, "preset current", rc.Current().String(), "2026-03-18_2026-03-20")
	assertEqual(t, "preset comparison", rc.Comparison().String(), "2026-03-15_2026-03-17")
}
