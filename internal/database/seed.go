// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package database

import (
	"context"
	"fmt"

	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/models"
)

// SeedSource provides demo data to load into an empty database.
type SeedSource interface {
	Events() []models.Event
	Records() []models.EntityRecord
}

// SeedMockData loads the fixture's events and entity records. It is a no-op
// when the event log already has rows, so restarts do not duplicate data.
// Intended for demos and local development only.
func (db *DB) SeedMockData(ctx context.Context, src SeedSource) error {
	events, _, err := db.RecordCounts(ctx)
	if err != nil {
		return err
	}
	if events > 0 {
		logging.Info().Int64("events", events).Msg("Database already populated, skipping mock data")
		return nil
	}

	logging.Info().Msg("Seeding database with mock data...")

	nEvents, err := db.InsertEvents(ctx, src.Events())
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}
	nRecords, err := db.InsertRecords(ctx, src.Records())
	if err != nil {
		return fmt.Errorf("failed to seed entity records: %w", err)
	}

	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint after seeding")
	}

	logging.Info().
		Int("events", nEvents).
		Int("records", nRecords).
		Msg("Mock data seeded")
	return nil
}
