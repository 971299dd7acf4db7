// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package eventstore

import (
	"context"
	"time"

	"github.com/maisonmai/analytics/internal/analytics"
	"github.com/maisonmai/analytics/internal/mockdata"
	"github.com/maisonmai/analytics/internal/models"
)

// Store is the read side of the event log. Bounds are whole UTC days and nil
// means unbounded. FetchEvents returns events in ascending timestamp order.
type Store interface {
	FetchEvents(ctx context.Context, from, to *time.Time) ([]models.Event, error)
	FetchAggregateCounts(ctx context.Context, from, to *time.Time) (models.AggregateCounts, error)
}

// Degradable is implemented by stores that answer failures with empty
// results. The extra return reports whether that happened.
type Degradable interface {
	FetchEventsOrEmpty(ctx context.Context, from, to *time.Time) ([]models.Event, bool)
	FetchAggregateCountsOrEmpty(ctx context.Context, from, to *time.Time) (models.AggregateCounts, bool)
}

// MemoryStore serves a generated fixture. It never fails.
type MemoryStore struct {
	fixture *mockdata.Fixture
}

// NewMemoryStore wraps a fixture.
func NewMemoryStore(f *mockdata.Fixture) *MemoryStore {
	return &MemoryStore{fixture: f}
}

// FetchEvents implements Store.
func (m *MemoryStore) FetchEvents(ctx context.Context, from, to *time.Time) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return analytics.FilterByRange(m.fixture.Events(), from, to), nil
}

// FetchAggregateCounts implements Store.
func (m *MemoryStore) FetchAggregateCounts(ctx context.Context, from, to *time.Time) (models.AggregateCounts, error) {
	if err := ctx.Err(); err != nil {
		return models.AggregateCounts{}, err
	}
	return m.fixture.AggregateCounts(from, to), nil
}
