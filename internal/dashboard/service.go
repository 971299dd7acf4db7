// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/maisonmai/analytics/internal/analytics"
	"github.com/maisonmai/analytics/internal/cache"
	"github.com/maisonmai/analytics/internal/config"
	"github.com/maisonmai/analytics/internal/eventstore"
	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/metrics"
	"github.com/maisonmai/analytics/internal/models"
)

const (
	cacheType = "dashboard"

	// DefaultBuildTimeout bounds one dashboard build when no option sets it.
	DefaultBuildTimeout = 30 * time.Second
)

// ErrDegraded is returned by Warm when the store answered with substitute
// empty data. The previous cache entry is kept.
var ErrDegraded = errors.New("event store degraded, dashboard not cached")

// Service assembles dashboards from an event store. Results are cached per
// date range and concurrent requests for the same range share one build.
type Service struct {
	store        eventstore.Store
	cache        *cache.Cache[models.Dashboard]
	group        singleflight.Group
	now          func() time.Time
	defaultDays  int
	buildTimeout time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for default ranges and
// GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithBuildTimeout bounds each shared dashboard build. Builds run detached
// from the requesting caller, so this is their only deadline.
func WithBuildTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.buildTimeout = d
		}
	}
}

// BuildTimeout derives the build deadline from the per-fetch timeout. A build
// runs two sequential fetches per window.
func BuildTimeout(fetchTimeout time.Duration) time.Duration {
	if fetchTimeout <= 0 {
		return DefaultBuildTimeout
	}
	return 2 * fetchTimeout
}

// NewService creates a dashboard service over store. A zero CacheTTL
// disables caching.
func NewService(store eventstore.Store, cfg *config.AnalyticsConfig, opts ...Option) *Service {
	s := &Service{
		store:        store,
		cache:        cache.New[models.Dashboard](cfg.CacheTTL),
		now:          time.Now,
		defaultDays:  cfg.DefaultRangeDays,
		buildTimeout: DefaultBuildTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cache exposes the result cache so its janitor can be supervised.
func (s *Service) Cache() *cache.Cache[models.Dashboard] {
	return s.cache
}

// DefaultRange returns the last DefaultRangeDays days ending today.
func (s *Service) DefaultRange() models.DateRange {
	return analytics.NewRangeController(s.defaultDays, s.now()).Current()
}

// Invalidate drops every cached dashboard.
func (s *Service) Invalidate() {
	s.cache.Clear()
}

// Overview returns the full dashboard for r. Concurrent callers share one
// build, which is not canceled when the caller that started it goes away.
// Degraded dashboards are returned but never cached.
func (s *Service) Overview(ctx context.Context, r models.DateRange) (models.Dashboard, bool, error) {
	key := overviewKey(r)

	if d, ok := s.cache.Get(key); ok {
		metrics.RecordCacheLookup(cacheType, true)
		return d, true, nil
	}
	metrics.RecordCacheLookup(cacheType, false)

	ch := s.group.DoChan(key, func() (any, error) {
		bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.buildTimeout)
		defer cancel()

		d, err := s.build(bctx, r)
		if err != nil {
			return nil, err
		}
		if d.Degraded {
			logging.Ctx(ctx).Warn().Str("range", r.String()).Msg("Dashboard built from degraded store, not caching")
			return d, nil
		}
		s.cache.Set(key, d)
		return d, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return models.Dashboard{}, false, res.Err
		}
		return res.Val.(models.Dashboard), false, nil
	case <-ctx.Done():
		return models.Dashboard{}, false, ctx.Err()
	}
}

// Warm rebuilds the default-range dashboard and replaces its cache entry,
// so a periodic caller keeps the landing view fresh. A degraded build leaves
// the current entry in place and returns ErrDegraded.
func (s *Service) Warm(ctx context.Context) error {
	r := s.DefaultRange()
	d, err := s.build(ctx, r)
	if err != nil {
		return err
	}
	if d.Degraded {
		return ErrDegraded
	}
	s.cache.Set(overviewKey(r), d)
	return nil
}

func overviewKey(r models.DateRange) string {
	return cache.GenerateKey("overview", r)
}

// Export returns one view of the dashboard for r as a CSV-ready table.
func (s *Service) Export(ctx context.Context, view string, r models.DateRange) (analytics.ExportTable, error) {
	d, _, err := s.Overview(ctx, r)
	if err != nil {
		return analytics.ExportTable{}, err
	}
	return analytics.Export(view, &d)
}

// build fetches the current and comparison windows concurrently and
// aggregates once both are in. An inverted range fails before any fetch.
func (s *Service) build(ctx context.Context, r models.DateRange) (models.Dashboard, error) {
	start := time.Now()
	log := logging.Ctx(ctx)

	var rc analytics.RangeController
	if err := rc.SetRange(r.From, r.To); err != nil {
		return models.Dashboard{}, err
	}
	r = rc.Current()

	var current, previous analytics.Source
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.fetchWindow(gctx, r)
		if err != nil {
			return fmt.Errorf("fetch current window: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		previous, err = s.fetchWindow(gctx, rc.Comparison())
		if err != nil {
			return fmt.Errorf("fetch comparison window: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}

	d := analytics.BuildDashboard(r, current, previous, s.now())

	metrics.RecordDataSource(string(d.Source))
	metrics.RecordAggregation("overview", len(current.Events)+len(previous.Events), time.Since(start))

	log.Debug().
		Str("range", r.String()).
		Str("source", string(d.Source)).
		Str("previous_source", string(previous.Kind())).
		Int("events", len(current.Events)).
		Dur("duration", time.Since(start)).
		Msg("Dashboard built")

	return d, nil
}

// fetchWindow loads the event log for r and, only when it is empty, the
// aggregate snapshot for the same window.
func (s *Service) fetchWindow(ctx context.Context, r models.DateRange) (analytics.Source, error) {
	from, to := r.Bounds()

	if ds, ok := s.store.(eventstore.Degradable); ok {
		events, degraded := ds.FetchEventsOrEmpty(ctx, from, to)
		if len(events) > 0 {
			return analytics.EventSource(events), nil
		}
		counts, countsDegraded := ds.FetchAggregateCountsOrEmpty(ctx, from, to)
		return analytics.Source{Events: events, Snapshot: &counts, Degraded: degraded || countsDegraded}, nil
	}

	events, err := s.store.FetchEvents(ctx, from, to)
	if err != nil {
		return analytics.Source{}, err
	}
	if len(events) > 0 {
		return analytics.EventSource(events), nil
	}

	counts, err := s.store.FetchAggregateCounts(ctx, from, to)
	if err != nil {
		return analytics.Source{}, err
	}
	return analytics.Source{Events: events, Snapshot: &counts}, nil
}
