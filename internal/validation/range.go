// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package validation

import (
	"fmt"
	"time"

	"github.com/maisonmai/analytics/internal/analytics"
	"github.com/maisonmai/analytics/internal/models"
)

// RangeQuery holds the raw date range query parameters.
type RangeQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// ExportQuery is a RangeQuery plus the view being exported.
type ExportQuery struct {
	RangeQuery
	View string `query:"view" validate:"required,oneof=funnel kpis retention daily categories products"`
}

// ParseRange validates q and resolves it to a DateRange. Empty bounds are
// taken from def. maxDays <= 0 disables the span check.
func ParseRange(q RangeQuery, def models.DateRange, maxDays int) (models.DateRange, *RequestValidationError) {
	if verr := ValidateStruct(&q); verr != nil {
		return models.DateRange{}, verr
	}
	return resolveRange(q, def, maxDays)
}

// ParseExport validates q and resolves its range.
func ParseExport(q ExportQuery, def models.DateRange, maxDays int) (models.DateRange, *RequestValidationError) {
	if verr := ValidateStruct(&q); verr != nil {
		return models.DateRange{}, verr
	}
	return resolveRange(q.RangeQuery, def, maxDays)
}

func resolveRange(q RangeQuery, def models.DateRange, maxDays int) (models.DateRange, *RequestValidationError) {
	from, to := def.From, def.To
	// Tag validation already guarantees the layout.
	if q.From != "" {
		from, _ = time.Parse(models.DateLayout, q.From)
	}
	if q.To != "" {
		to, _ = time.Parse(models.DateLayout, q.To)
	}

	r, err := analytics.NewDateRange(from, to)
	if err != nil {
		return models.DateRange{}, fieldError("from", "ltefield", q.From,
			fmt.Sprintf("from (%s) must not be after to (%s)",
				from.Format(models.DateLayout), to.Format(models.DateLayout)))
	}

	if maxDays > 0 && r.Days() > maxDays {
		return models.DateRange{}, fieldError("to", "max_span", q.To,
			fmt.Sprintf("date range spans %d days, maximum is %d", r.Days(), maxDays))
	}
	return r, nil
}

func fieldError(field, tag string, value any, message string) *RequestValidationError {
	return &RequestValidationError{Fields: []FieldError{{
		Field:   field,
		Tag:     tag,
		Value:   value,
		Message: message,
	}}}
}
