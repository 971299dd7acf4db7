// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package cache provides a typed, thread-safe in-memory cache with TTL support.

The dashboard service memoizes computed dashboards here, keyed by date range
(see GenerateKey). The aggregation engine itself holds no state; the cache is
owned by the caller that constructs it.

# Expiration

Entries expire lazily on Get. Serve sweeps the whole map periodically and is
started as a supervised service, so the sweeper stops with the process tree.

# Usage

	c := cache.New[models.Dashboard](time.Minute)
	key := cache.GenerateKey("overview", r)
	if d, ok := c.Get(key); ok {
	    return d
	}
	c.Set(key, computed)
*/
package cache
