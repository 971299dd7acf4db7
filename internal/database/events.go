// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/models"
)

// maxConflictRetries bounds retries of a batch that hit a DuckDB write conflict.
const maxConflictRetries = 3

// InsertEvents appends events to the log in one transaction. Events whose ID
// already exists are skipped. Returns the number of rows written.
func (db *DB) InsertEvents(ctx context.Context, events []models.Event) (int, error) {
	if err := db.checkOpen(); err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(events))
	for i := range events {
		row, err := eventRow(&events[i])
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var (
		inserted int
		err      error
	)
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		inserted, err = db.insertBatch(ctx, insertEventSQL, rows)
		if err == nil || !isTransactionConflict(err) {
			break
		}
		logging.Ctx(ctx).Debug().Int("attempt", attempt+1).Err(err).Msg("Event insert conflict, retrying")
	}
	observe("insert", "analytics_events", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert events: %w", err)
	}
	return inserted, nil
}

const insertEventSQL = `INSERT INTO analytics_events
	(id, user_id, session_id, event_type, event_time, metadata)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO NOTHING`

// eventRow validates an event and converts it to insert arguments.
func eventRow(e *models.Event) ([]any, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if !e.Type.Valid() {
		return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidEvent, e.ID, e.Type)
	}
	if e.Timestamp.IsZero() {
		return nil, fmt.Errorf("%w: %s has no timestamp", ErrInvalidEvent, e.ID)
	}
	if e.Metadata != nil && e.Metadata.EventType() != e.Type {
		return nil, fmt.Errorf("%w: %s metadata is for %s", ErrInvalidEvent, e.ID, e.Metadata.EventType())
	}

	md, err := models.EncodeMetadata(e.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: %s metadata: %w", ErrInvalidEvent, e.ID, err)
	}

	var userID sql.NullString
	if e.UserID != "" {
		userID = sql.NullString{String: e.UserID, Valid: true}
	}

	return []any{e.ID, userID, e.SessionID, string(e.Type), e.Timestamp.UTC(), string(md)}, nil
}

// insertBatch runs one prepared statement per row inside a transaction.
func (db *DB) insertBatch(ctx context.Context, query string, rows [][]any) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	inserted := 0
	for _, args := range rows {
		result, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return 0, err
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

// FetchEvents returns the events whose timestamp falls on a UTC day within
// [from, to], ordered by time then ID. Nil bounds are unbounded.
func (db *DB) FetchEvents(ctx context.Context, from, to *time.Time) ([]models.Event, error) {
	if err := db.checkOpen(); err != nil {
		return nil, err
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := timeRange("event_time", from, to)
	query := `SELECT id, user_id, session_id, event_type, event_time, metadata
		FROM analytics_events` + where + ` ORDER BY event_time, id`

	start := time.Now()
	events, err := db.queryEvents(ctx, query, args)
	observe("select", "analytics_events", start, err)
	if err != nil {
		logging.Ctx(ctx).Warn().Str("error_kind", errorKind(err)).Err(err).Msg("Event fetch failed")
		return nil, err
	}
	return events, nil
}

func (db *DB) queryEvents(ctx context.Context, query string, args []any) ([]models.Event, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer closeWithLog(rows, "rows")

	events := make([]models.Event, 0)
	for rows.Next() {
		var (
			e         models.Event
			userID    sql.NullString
			eventType string
			metadata  string
		)
		if err := rows.Scan(&e.ID, &userID, &e.SessionID, &eventType, &e.Timestamp, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.UserID = userID.String
		e.Type = models.EventType(eventType)
		e.Timestamp = e.Timestamp.UTC()

		md, err := models.DecodeMetadata(e.Type, []byte(metadata))
		if err != nil {
			// Rows with unreadable payloads still count toward volume metrics.
			logging.Ctx(ctx).Warn().Str("event_id", e.ID).Err(err).Msg("Dropping undecodable event metadata")
			md = nil
		}
		e.Metadata = md
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}
