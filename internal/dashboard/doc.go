// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

// Package dashboard turns an event store into dashboards.
//
// Service.Overview fetches the requested window and its comparison window in
// parallel, falls back to the aggregate snapshot for a window whose event log
// is empty, and hands both to analytics.BuildDashboard. Finished dashboards
// are cached per range in a cache.Cache; concurrent requests for a range that
// is still being built wait on the same build.
package dashboard
