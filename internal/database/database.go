// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/maisonmai/analytics/internal/config"
	"github.com/maisonmai/analytics/internal/logging"
)

// DB wraps the DuckDB connection holding the analytics event log and the
// entity records used for aggregate snapshots.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	mu     sync.RWMutex
	closed bool
}

// New opens (or creates) the DuckDB database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Str("max_memory", cfg.MaxMemory).
		Msg("DuckDB event store ready")

	return db, nil
}

// connectionString builds the DuckDB DSN with tuning options.
func connectionString(cfg *config.DatabaseConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}
	return fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s",
		cfg.Path, threads, maxMemory, preserveOrder)
}

// Conn returns the underlying SQL connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// initialize creates tables and indexes, then flushes the WAL.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	if err := db.createIndexes(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}
	return nil
}

// Close checkpoints and closes the connection. Safe to call more than once.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed || db.conn == nil {
		return nil
	}
	db.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}

	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if err := db.checkOpen(); err != nil {
		return err
	}
	return db.conn.PingContext(ctx)
}

// checkOpen returns ErrDatabaseClosed once Close has been called.
func (db *DB) checkOpen() error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed || db.conn == nil {
		return ErrDatabaseClosed
	}
	return nil
}
