// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package services

import (
	"context"
	"time"

	"github.com/maisonmai/analytics/internal/logging"
)

// WarmFunc builds whatever should be in the cache before users ask for it.
type WarmFunc func(ctx context.Context) error

// CacheWarmerService calls a WarmFunc once on start and then every interval.
// A failed warm is logged and retried on the next tick.
type CacheWarmerService struct {
	warm     WarmFunc
	interval time.Duration
	timeout  time.Duration
}

// NewCacheWarmerService creates a warmer. Each warm is bounded by timeout
// (interval when timeout <= 0).
func NewCacheWarmerService(warm WarmFunc, interval, timeout time.Duration) *CacheWarmerService {
	if timeout <= 0 {
		timeout = interval
	}
	return &CacheWarmerService{warm: warm, interval: interval, timeout: timeout}
}

// Serve implements suture.Service.
func (s *CacheWarmerService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *CacheWarmerService) runOnce(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(logging.ContextWithNewCorrelationID(ctx), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.warm(warmCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Ctx(warmCtx).Warn().Err(err).Msg("Cache warm failed")
		return
	}
	logging.Ctx(warmCtx).Debug().Dur("duration", time.Since(start)).Msg("Cache warmed")
}

// String implements fmt.Stringer for suture's logs.
func (s *CacheWarmerService) String() string {
	return "cache-warmer"
}
