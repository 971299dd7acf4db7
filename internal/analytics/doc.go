// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package analytics is the aggregation engine behind the MaisonMai dashboard.

Every function here is synchronous and pure: it reads a slice of events,
never modifies it, and returns freshly allocated results. Calling the same
function twice with the same input yields the same output, so callers may
compute the current and comparison windows concurrently and cache results
freely.

Views:

  - FilterByRange: inclusive whole-day range filtering (UTC)
  - ComputeFunnel: distinct-user reach for the seven journey stages
  - ComputeKPIs: eight KPIs with percent change against the comparison window
  - ComputeRetention: returning, multi-profile and multi-session-idea cohorts
  - ComputeDaily / FillDailyGaps: per-day activity series
  - ComputeCategoryStats / ComputeProductStats: category and idea performance
  - ComputeEngagement: usage intensity summary
  - BuildDashboard: all of the above for one range
  - Export / WriteCSV: CSV shaping of each view

Data sources:

A period is described by a Source holding the raw event log and an optional
aggregate snapshot of persisted entity counts. Source.Kind picks the event log
whenever it has any events and falls back to the snapshot only when the log is
empty and a snapshot was supplied.

Conventions:

Percentages reported as strings (retention rates, click-through and save
rates) carry one decimal and are "0.0" when the denominator is zero. Funnel
percentages are relative to the account_created stage and are not clamped;
stages are independent reach counts, so a later stage may exceed 100%.
Category click-through rate is clicks per save.
*/
package analytics
