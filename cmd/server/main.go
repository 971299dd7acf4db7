// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/maisonmai/analytics/internal/api"
	"github.com/maisonmai/analytics/internal/config"
	"github.com/maisonmai/analytics/internal/dashboard"
	"github.com/maisonmai/analytics/internal/database"
	"github.com/maisonmai/analytics/internal/eventstore"
	"github.com/maisonmai/analytics/internal/logging"
	"github.com/maisonmai/analytics/internal/mockdata"
	"github.com/maisonmai/analytics/internal/supervisor"
	"github.com/maisonmai/analytics/internal/supervisor/services"
)

const httpShutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Bool("duckdb", cfg.Database.UsesDuckDB()).
		Msg("Starting MaisonMai analytics")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event store")
	}
	defer closeStore()

	resilient := eventstore.NewResilient(store, &cfg.EventStore)
	buildTimeout := dashboard.BuildTimeout(cfg.EventStore.FetchTimeout)
	svc := dashboard.NewService(resilient, &cfg.Analytics, dashboard.WithBuildTimeout(buildTimeout))

	handler := api.NewHandler(svc, cfg, resilient)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS accepts any origin in production (CORS_ORIGINS=*); set explicit admin console origins")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(svc.Cache())
	if cfg.Analytics.WarmInterval > 0 {
		tree.AddDataService(services.NewCacheWarmerService(svc.Warm, cfg.Analytics.WarmInterval, buildTimeout))
		logging.Info().Dur("interval", cfg.Analytics.WarmInterval).Msg("Cache warmer added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// openStore returns the configured event store and its cleanup func.
func openStore(ctx context.Context, cfg *config.Config) (eventstore.Store, func(), error) {
	fixture := mockdata.New(mockdata.Options{
		Seed:  cfg.Database.Seed,
		Users: cfg.Database.SeedUsers,
		Days:  cfg.Database.SeedDays,
		End:   time.Now().UTC(),
	})

	if !cfg.Database.UsesDuckDB() {
		logging.Info().
			Int("users", cfg.Database.SeedUsers).
			Int("days", cfg.Database.SeedDays).
			Msg("No DUCKDB_PATH set, serving the in-memory demo dataset")
		return eventstore.NewMemoryStore(fixture), func() {}, nil
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}
	logging.Info().Str("path", cfg.Database.Path).Msg("Database initialized successfully")

	if cfg.Database.SeedMockData {
		logging.Info().Msg("Mock data seeding enabled (SEED_MOCK_DATA=true)")
		if err := db.SeedMockData(ctx, fixture); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("seed mock data: %w", err)
		}
	}

	return db, closeDB, nil
}
