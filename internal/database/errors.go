// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package database

import (
	"errors"
	"io"

	"github.com/maisonmai/analytics/internal/logging"
)

var (
	// ErrDatabaseClosed is returned by every operation after Close.
	ErrDatabaseClosed = errors.New("database is closed")

	// ErrInvalidEvent is returned when an event cannot be stored.
	ErrInvalidEvent = errors.New("invalid event")
)

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
