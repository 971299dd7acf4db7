// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

// Package validation checks API query parameters with go-playground/validator
// v10 and converts failures into the API error envelope.
//
// # Overview
//
// A single validator instance is shared process-wide (GetValidator). Field
// names in messages come from the struct's `query` tag, so a bad date is
// reported against "from" rather than "From".
//
// ValidateStruct runs the tag rules and returns a *RequestValidationError,
// whose ToAPIError produces a models.APIError with code VALIDATION_ERROR.
//
// # Date Ranges
//
// RangeQuery carries the raw from/to query parameters. ParseRange applies the
// tag rules (YYYY-MM-DD dates), then the cross-field rules the validator
// cannot express: from must not be after to, and the span must not exceed
// the configured maximum. Missing bounds take the default range's values.
//
//	q := validation.RangeQuery{From: r.URL.Query().Get("from"), To: r.URL.Query().Get("to")}
//	dr, verr := validation.ParseRange(q, svc.DefaultRange(), cfg.MaxRangeDays)
//	if verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation
