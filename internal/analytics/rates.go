// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package analytics

import (
	"github.com/shopspring/decimal"
)

// zeroRate is reported for any rate whose denominator is zero.
const zeroRate = "0.0"

// FormatRate returns num/den*100 with one decimal place, "0.0" when den is 0.
func FormatRate(num, den int) string {
	if den == 0 {
		return zeroRate
	}
	return decimal.NewFromInt(int64(num)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(den))).
		StringFixed(1)
}

// ratio returns num/den, 0 when den is 0, rounded to two places.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(num)).
		Div(decimal.NewFromInt(int64(den))).
		Round(2).
		InexactFloat64()
}

// percentOf returns num/den*100 without rounding. den < 1 is treated as 1.
func percentOf(num, den int) float64 {
	if den < 1 {
		den = 1
	}
	return float64(num) / float64(den) * 100
}

// distinct is a set of identifiers; the empty identifier is never stored.
type distinct map[string]struct{}

func (d distinct) add(id string) {
	if id != "" {
		d[id] = struct{}{}
	}
}
