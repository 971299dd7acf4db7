// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package eventstore

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/maisonmai/analytics/internal/config"
	"github.com/maisonmai/analytics/internal/metrics"
	"github.com/maisonmai/analytics/internal/mockdata"
	"github.com/maisonmai/analytics/internal/models"
)

var testEnd = time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

func newFixture() *mockdata.Fixture {
	opts := mockdata.DefaultOptions(testEnd)
	opts.Users = 12
	opts.Days = 21
	return mockdata.New(opts)
}

// fakeStore fails while failing is set and counts calls.
type fakeStore struct {
	failing atomic.Bool
	calls   atomic.Int32
	pingErr error
	delay   time.Duration
}

func (f *fakeStore) FetchEvents(ctx context.Context, _, _ *time.Time) ([]models.Event, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failing.Load() {
		return nil, errors.New("store unavailable")
	}
	return []models.Event{{ID: "e1", SessionID: "s1", Type: models.EventPageView, Timestamp: testEnd}}, nil
}

func (f *fakeStore) FetchAggregateCounts(_ context.Context, _, _ *time.Time) (models.AggregateCounts, error) {
	f.calls.Add(1)
	if f.failing.Load() {
		return models.AggregateCounts{}, errors.New("store unavailable")
	}
	return models.AggregateCounts{TotalUsers: 3}, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func breakerConfig() *config.EventStoreConfig {
	return &config.EventStoreConfig{
		FetchTimeout: time.Second,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestMemoryStore_FetchEvents(t *testing.T) {
	t.Parallel()

	f := newFixture()
	store := NewMemoryStore(f)
	ctx := context.Background()

	all, err := store.FetchEvents(ctx, nil, nil)
	if err != nil {
		t.Fatalf("FetchEvents() error = %v", err)
	}
	if len(all) != len(f.Events()) {
		t.Errorf("unbounded len = %d, want %d", len(all), len(f.Events()))
	}

	from := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 26, 0, 0, 0, 0, time.UTC)
	window, err := store.FetchEvents(ctx, &from, &to)
	if err != nil {
		t.Fatalf("FetchEvents() error = %v", err)
	}
	end := to.AddDate(0, 0, 1)
	for i := range window {
		ts := window[i].Timestamp
		if ts.Before(from) || !ts.Before(end) {
			t.Errorf("event %s at %v outside window", window[i].ID, ts)
		}
		if i > 0 && ts.Before(window[i-1].Timestamp) {
			t.Errorf("events not in ascending order at %d", i)
		}
	}
}

func TestMemoryStore_FetchAggregateCounts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	store := NewMemoryStore(f)

	from := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	got, err := store.FetchAggregateCounts(context.Background(), &from, &to)
	if err != nil {
		t.Fatalf("FetchAggregateCounts() error = %v", err)
	}
	if want := f.AggregateCounts(&from, &to); got != want {
		t.Errorf("FetchAggregateCounts() = %+v, want %+v", got, want)
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(newFixture())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.FetchEvents(ctx, nil, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchEvents() error = %v, want context.Canceled", err)
	}
}

func TestResilient_PassesThrough(t *testing.T) {
	store := &fakeStore{}
	r := NewResilient(store, breakerConfig())
	ctx := context.Background()

	events, err := r.FetchEvents(ctx, nil, nil)
	if err != nil || len(events) != 1 {
		t.Fatalf("FetchEvents() = %v, %v", events, err)
	}
	counts, err := r.FetchAggregateCounts(ctx, nil, nil)
	if err != nil || counts.TotalUsers != 3 {
		t.Fatalf("FetchAggregateCounts() = %+v, %v", counts, err)
	}
	if r.State() != "closed" {
		t.Errorf("State() = %q, want closed", r.State())
	}
}

func TestResilient_FailureYieldsEmptyResult(t *testing.T) {
	store := &fakeStore{}
	store.failing.Store(true)
	r := NewResilient(store, breakerConfig())
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.EventStoreFetchFailures.WithLabelValues("fetch_events"))

	events, err := r.FetchEvents(ctx, nil, nil)
	if err != nil {
		t.Fatalf("FetchEvents() error = %v, want nil", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("FetchEvents() = %v, want empty non-nil slice", events)
	}

	counts, err := r.FetchAggregateCounts(ctx, nil, nil)
	if err != nil {
		t.Fatalf("FetchAggregateCounts() error = %v, want nil", err)
	}
	if counts != (models.AggregateCounts{}) {
		t.Errorf("FetchAggregateCounts() = %+v, want zero", counts)
	}

	after := testutil.ToFloat64(metrics.EventStoreFetchFailures.WithLabelValues("fetch_events"))
	if after != before+1 {
		t.Errorf("fetch failures = %v, want %v", after, before+1)
	}
}

var _ Degradable = (*Resilient)(nil)

func TestResilient_ReportsDegradation(t *testing.T) {
	store := &fakeStore{}
	r := NewResilient(store, breakerConfig())
	ctx := context.Background()

	if events, degraded := r.FetchEventsOrEmpty(ctx, nil, nil); degraded || len(events) != 1 {
		t.Errorf("healthy FetchEventsOrEmpty() = %d events, degraded=%v", len(events), degraded)
	}
	if counts, degraded := r.FetchAggregateCountsOrEmpty(ctx, nil, nil); degraded || counts.TotalUsers != 3 {
		t.Errorf("healthy FetchAggregateCountsOrEmpty() = %+v, degraded=%v", counts, degraded)
	}

	store.failing.Store(true)
	if events, degraded := r.FetchEventsOrEmpty(ctx, nil, nil); !degraded || len(events) != 0 {
		t.Errorf("failing FetchEventsOrEmpty() = %d events, degraded=%v, want 0 and true", len(events), degraded)
	}
	if counts, degraded := r.FetchAggregateCountsOrEmpty(ctx, nil, nil); !degraded || counts != (models.AggregateCounts{}) {
		t.Errorf("failing FetchAggregateCountsOrEmpty() = %+v, degraded=%v, want zero and true", counts, degraded)
	}
}

func TestResilient_OpensCircuit(t *testing.T) {
	store := &fakeStore{}
	store.failing.Store(true)
	r := NewResilient(store, breakerConfig())
	ctx := context.Background()

	for i := 0; i < 10 && r.cb.State() != gobreaker.StateOpen; i++ {
		_, _ = r.FetchEvents(ctx, nil, nil)
	}
	if r.cb.State() != gobreaker.StateOpen {
		t.Fatalf("breaker state = %v, want open", r.cb.State())
	}
	if r.State() != "open" {
		t.Errorf("State() = %q, want open", r.State())
	}

	calls := store.calls.Load()
	events, err := r.FetchEvents(ctx, nil, nil)
	if err != nil || len(events) != 0 {
		t.Errorf("FetchEvents() while open = %v, %v", events, err)
	}
	if store.calls.Load() != calls {
		t.Error("open circuit should not reach the store")
	}

	if err := r.Ready(ctx); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Ready() error = %v, want ErrCircuitOpen", err)
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(BreakerName)); got != 2 {
		t.Errorf("breaker state gauge = %v, want 2", got)
	}
}

func TestResilient_FetchTimeout(t *testing.T) {
	store := &fakeStore{delay: time.Second}
	cfg := breakerConfig()
	cfg.FetchTimeout = 20 * time.Millisecond
	r := NewResilient(store, cfg)

	start := time.Now()
	events, err := r.FetchEvents(context.Background(), nil, nil)
	if err != nil || len(events) != 0 {
		t.Errorf("FetchEvents() = %v, %v; want empty", events, err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("fetch took %v, timeout not applied", elapsed)
	}
}

func TestResilient_Ready(t *testing.T) {
	ctx := context.Background()

	healthy := NewResilient(&fakeStore{}, breakerConfig())
	if err := healthy.Ready(ctx); err != nil {
		t.Errorf("Ready() error = %v", err)
	}

	pingErr := errors.New("database is closed")
	down := NewResilient(&fakeStore{pingErr: pingErr}, breakerConfig())
	if err := down.Ready(ctx); !errors.Is(err, pingErr) {
		t.Errorf("Ready() error = %v, want %v", err, pingErr)
	}

	// MemoryStore has no Ping and is always ready.
	mem := NewResilient(NewMemoryStore(newFixture()), breakerConfig())
	if err := mem.Ready(ctx); err != nil {
		t.Errorf("Ready() error = %v", err)
	}
}

func TestStateToString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		str   string
		val   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
		{gobreaker.State(99), "unknown", -1},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.str)
		}
		if got := stateToFloat(tt.state); got != tt.val {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.val)
		}
	}
}
