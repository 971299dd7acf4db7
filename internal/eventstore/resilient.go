// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package eventstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/maisonmai/analytics/internal/config"
	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/metrics"
	"github.com/maisonmai/analytics/internal/models"
)

// BreakerName labels the event store circuit breaker in metrics and logs.
const BreakerName = "event-store"

// ErrCircuitOpen is returned by Ready while the breaker rejects requests.
var ErrCircuitOpen = errors.New("event store circuit breaker is open")

// pinger is implemented by stores that can report liveness.
type pinger interface {
	Ping(ctx context.Context) error
}

// Resilient wraps a Store with a circuit breaker and a per-call timeout.
// A failed or rejected fetch is logged, counted, and answered with an empty
// result, so callers never see store errors.
type Resilient struct {
	store        Store
	cb           *gobreaker.CircuitBreaker[any]
	fetchTimeout time.Duration
}

// NewResilient wraps store using the breaker settings from cfg.
func NewResilient(store Store, cfg *config.EventStoreConfig) *Resilient {
	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(0)

	minRequests := cfg.MinRequests
	failureRatio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := ratio >= failureRatio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening event store circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Resilient{store: store, cb: cb, fetchTimeout: cfg.FetchTimeout}
}

// FetchEvents implements Store. It returns an empty slice and nil error when
// the underlying store fails.
func (r *Resilient) FetchEvents(ctx context.Context, from, to *time.Time) ([]models.Event, error) {
	events, _ := r.FetchEventsOrEmpty(ctx, from, to)
	return events, nil
}

// FetchAggregateCounts implements Store. It returns zero counts and nil error
// when the underlying store fails.
func (r *Resilient) FetchAggregateCounts(ctx context.Context, from, to *time.Time) (models.AggregateCounts, error) {
	counts, _ := r.FetchAggregateCountsOrEmpty(ctx, from, to)
	return counts, nil
}

// FetchEventsOrEmpty implements Degradable.
func (r *Resilient) FetchEventsOrEmpty(ctx context.Context, from, to *time.Time) ([]models.Event, bool) {
	events, err := execute(ctx, r, "fetch_events", func(ctx context.Context) ([]models.Event, error) {
		return r.store.FetchEvents(ctx, from, to)
	})
	if err != nil {
		return []models.Event{}, true
	}
	return events, false
}

// FetchAggregateCountsOrEmpty implements Degradable.
func (r *Resilient) FetchAggregateCountsOrEmpty(ctx context.Context, from, to *time.Time) (models.AggregateCounts, bool) {
	counts, err := execute(ctx, r, "fetch_aggregate_counts", func(ctx context.Context) (models.AggregateCounts, error) {
		return r.store.FetchAggregateCounts(ctx, from, to)
	})
	if err != nil {
		return models.AggregateCounts{}, true
	}
	return counts, false
}

// State returns the breaker state as "closed", "half-open" or "open".
func (r *Resilient) State() string {
	return stateToString(r.cb.State())
}

// Ready reports whether fetches are currently being attempted, pinging the
// underlying store when it supports that.
func (r *Resilient) Ready(ctx context.Context) error {
	if r.cb.State() == gobreaker.StateOpen {
		return ErrCircuitOpen
	}
	if p, ok := r.store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// execute runs fn under the breaker with the fetch timeout applied, recording
// the outcome. The returned error is only for the caller's fallback decision.
func execute[T any](ctx context.Context, r *Resilient, operation string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if r.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.fetchTimeout)
		defer cancel()
	}

	result, err := r.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		r.recordFailure(ctx, operation, err)
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, "success").Inc()

	typed, ok := result.(T)
	if !ok {
		err := fmt.Errorf("circuit breaker: unexpected result type %T", result)
		r.recordFailure(ctx, operation, err)
		return zero, err
	}
	return typed, nil
}

func (r *Resilient) recordFailure(ctx context.Context, operation string, err error) {
	outcome := "failure"
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		outcome = "rejected"
	}
	metrics.CircuitBreakerRequests.WithLabelValues(BreakerName, outcome).Inc()
	metrics.RecordFetchFailure(operation)

	logging.Ctx(ctx).Warn().
		Str("operation", operation).
		Str("outcome", outcome).
		Err(err).
		Msg("Event store fetch failed, returning empty result")
}

// stateToFloat converts circuit breaker state to float for Prometheus gauge
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
