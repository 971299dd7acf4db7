// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maisonmai/analytics/internal/analytics"
	"github.com/maisonmai/analytics/internal/metrics"
)

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// RecordCounts returns the number of rows in the event log and entity table.
func (db *DB) RecordCounts(ctx context.Context) (events, records int64, err error) {
	if err := db.checkOpen(); err != nil {
		return 0, 0, err
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM analytics_events").Scan(&events); err != nil {
		return 0, 0, fmt.Errorf("failed to count events: %w", err)
	}
	if err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM entity_records").Scan(&records); err != nil {
		return events, 0, fmt.Errorf("failed to count entity records: %w", err)
	}
	return events, records, nil
}

// timeRange builds a WHERE fragment selecting whole UTC days of column.
// Nil bounds are unbounded.
func timeRange(column string, from, to *time.Time) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if from != nil {
		conds = append(conds, column+" >= ?")
		args = append(args, analytics.StartOfDay(*from))
	}
	if to != nil {
		conds = append(conds, column+" < ?")
		args = append(args, analytics.StartOfDay(*to).AddDate(0, 0, 1))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// observe records query metrics.
func observe(operation, table string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}
