// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

// Package database is the DuckDB-backed event store for the analytics engine.
//
// # Overview
//
// The package persists the append-only usage event log and the entity records
// used for aggregate snapshots, and answers the two range queries the
// dashboard needs: the events in a date range and the per-kind entity counts
// in a date range. Aggregation itself happens in package analytics; this
// package only filters and decodes.
//
// # Files
//
//   - database.go: lifecycle (open, initialize, close, ping)
//   - database_connection.go: pool configuration and error classification
//   - database_schema.go: table and index creation
//   - database_utils.go: context handling, checkpoints, range predicates
//   - events.go: event insert and range fetch
//   - records.go: entity record insert and per-kind counts
//   - seed.go: demo data loading
//
// # Date Ranges
//
// Range bounds are whole UTC days. A bound of 2026-03-10 selects from
// 2026-03-10T00:00:00Z inclusive; an upper bound of 2026-03-12 selects up to
// but excluding 2026-03-13T00:00:00Z. Nil bounds are unbounded.
//
// # Metadata
//
// Event payloads are stored as a JSON object in a TEXT column and decoded
// into the typed payload for the event's type on read. A row whose payload
// cannot be decoded is returned with nil metadata and a warning is logged.
//
// # Thread Safety
//
// DB is safe for concurrent use. Every operation returns ErrDatabaseClosed
// after Close.
package database
