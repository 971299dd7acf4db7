// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package models defines the data structures shared by the event store, the
aggregation engine and the HTTP API.

Input models:

  - Event: an immutable, timestamped user action with typed metadata
  - EventMetadata: one payload type per EventType (IdeasGeneratedMetadata,
    IdeaSavedMetadata, OutboundClickMetadata, ...)
  - RecommendationItem: a gift idea; IdeaID joins generation, save and click events
  - AggregateCounts: persisted entity counts used when no event log exists

Result models are derived and never persisted: FunnelStage, KPISet,
DailyMetric, RetentionStats, CategoryStat, ProductStat, EngagementStats and
the Dashboard that bundles them.

JSON uses snake_case field names. Event decoding picks the metadata payload
type from event_type and tolerates missing fields.
*/
package models
