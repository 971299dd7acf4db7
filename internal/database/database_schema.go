// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
database_schema.go - Database Schema Management

Tables:
  - analytics_events: the append-only usage event log. metadata holds the
    event payload as a JSON object; user_id is NULL for anonymous events.
  - entity_records: one row per persisted application record (user, profile,
    person, gift idea, questionnaire, reminder, partner click), counted by
    kind for aggregate snapshots.

Indexes cover the range scans the dashboard issues: event_time for the
event log and (kind, created_at) for entity counts.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// createIndexes creates the range-scan indexes
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS analytics_events (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		session_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		event_time TIMESTAMP NOT NULL,
		metadata TEXT NOT NULL DEFAULT '{}',
		ingested_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS entity_records (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);`,
}

var indexQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_events_time ON analytics_events(event_time);`,
	`CREATE INDEX IF NOT EXISTS idx_events_type_time ON analytics_events(event_type, event_time);`,
	`CREATE INDEX IF NOT EXISTS idx_entity_kind_created ON entity_records(kind, created_at);`,
}
