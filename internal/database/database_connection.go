// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package database

import (
	"runtime"
	"strings"
	"time"
)

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// isConnectionError checks if an error indicates database connection loss
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, s := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"database is closed",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction conflict") ||
		strings.Contains(msg, "Conflict on update")
}

// errorKind classifies a query error for metrics labels.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case isConnectionError(err):
		return "connection"
	case isTransactionConflict(err):
		return "conflict"
	default:
		return "query"
	}
}
