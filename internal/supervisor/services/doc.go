// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

// Package services adapts the server's components to suture.Service:
// HTTPServerService for net/http and CacheWarmerService for periodic cache
// population.
package services
