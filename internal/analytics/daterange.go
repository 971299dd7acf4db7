// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/maisonmai/analytics/internal/models"
)

// ErrInvalidRange is returned when a range ends before it starts.
var ErrInvalidRange = errors.New("invalid date range")

// NewDateRange normalizes both ends to whole UTC days.
func NewDateRange(from, to time.Time) (models.DateRange, error) {
	r := models.DateRange{From: StartOfDay(from), To: StartOfDay(to)}
	if r.To.Before(r.From) {
		return models.DateRange{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange,
			r.From.Format(models.DateLayout), r.To.Format(models.DateLayout))
	}
	return r, nil
}

// LastNDays returns the n-day window ending on now's UTC date. n < 1 is treated as 1.
func LastNDays(n int, now time.Time) models.DateRange {
	if n < 1 {
		n = 1
	}
	to := StartOfDay(now)
	return models.DateRange{From: to.AddDate(0, 0, -(n - 1)), To: to}
}

// ComparisonRange returns the equal-length window immediately preceding r:
// prevTo = from - 1 day, prevFrom = prevTo - (to - from).
func ComparisonRange(r models.DateRange) models.DateRange {
	span := r.Days() - 1
	prevTo := r.From.AddDate(0, 0, -1)
	return models.DateRange{From: prevTo.AddDate(0, 0, -span), To: prevTo}
}

// RangeController holds the current window and its comparison window. Every
// change re-derives both. The zero value holds no window until SetRange.
type RangeController struct {
	current    models.DateRange
	comparison models.DateRange
}

// NewRangeController starts on the last defaultDays days ending at now.
func NewRangeController(defaultDays int, now time.Time) *RangeController {
	rc := &RangeController{}
	rc.apply(LastNDays(defaultDays, now))
	return rc
}

// SetRange selects an explicit window. The controller is unchanged on error.
func (rc *RangeController) SetRange(from, to time.Time) error {
	r, err := NewDateRange(from, to)
	if err != nil {
		return err
	}
	rc.apply(r)
	return nil
}

// SetPreset selects the last days days ending at now.
func (rc *RangeController) SetPreset(days int, now time.Time) {
	rc.apply(LastNDays(days, now))
}

// Current returns the selected window.
func (rc *RangeController) Current() models.DateRange { return rc.current }

// Comparison returns the window preceding Current.
func (rc *RangeController) Comparison() models.DateRange { return rc.comparison }

func (rc *RangeController) apply(r models.DateRange) {
	rc.current = r
	rc.comparison = ComparisonRange(r)
}
