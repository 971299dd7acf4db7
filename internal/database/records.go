// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/maisonmai/analytics/internal/models"
)

const insertRecordSQL = `INSERT INTO entity_records (id, kind, created_at)
	VALUES (?, ?, ?)
	ON CONFLICT (id) DO NOTHING`

// InsertRecords stores entity records, skipping IDs already present.
func (db *DB) InsertRecords(ctx context.Context, records []models.EntityRecord) (int, error) {
	if err := db.checkOpen(); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		if r.ID == "" || r.Kind == "" {
			return 0, fmt.Errorf("%w: entity record needs id and kind", ErrInvalidEvent)
		}
		rows = append(rows, []any{r.ID, string(r.Kind), r.CreatedAt.UTC()})
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	n, err := db.insertBatch(ctx, insertRecordSQL, rows)
	observe("insert", "entity_records", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entity records: %w", err)
	}
	return n, nil
}

// FetchAggregateCounts counts entity records per kind created on a UTC day
// within [from, to]. Nil bounds are unbounded.
func (db *DB) FetchAggregateCounts(ctx context.Context, from, to *time.Time) (models.AggregateCounts, error) {
	var counts models.AggregateCounts
	if err := db.checkOpen(); err != nil {
		return counts, err
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := timeRange("created_at", from, to)
	query := `SELECT kind, COUNT(*) FROM entity_records` + where + ` GROUP BY kind`

	start := time.Now()
	err := db.scanCounts(ctx, query, args, &counts)
	observe("select", "entity_records", start, err)
	if err != nil {
		return models.AggregateCounts{}, err
	}
	return counts, nil
}

func (db *DB) scanCounts(ctx context.Context, query string, args []any, counts *models.AggregateCounts) error {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query entity counts: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var (
			kind string
			n    int64
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return fmt.Errorf("failed to scan entity count: %w", err)
		}
		counts.Add(models.EntityKind(kind), n)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating entity counts: %w", err)
	}
	return nil
}
