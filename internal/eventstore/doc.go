// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

// Package eventstore defines where the dashboard reads events from.
//
// Store is satisfied by database.DB (DuckDB) and by MemoryStore, which serves
// a generated mockdata.Fixture when no database is configured. Resilient
// wraps either one with a sony/gobreaker circuit breaker: failures and
// rejections are logged, counted in event_store_fetch_failures_total, and
// turned into empty results so aggregation always proceeds.
package eventstore
