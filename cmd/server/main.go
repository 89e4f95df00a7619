// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

// Package main is the entry point for the Curator server.
//
// Curator is the admin dashboard backend for an e-commerce catalog:
// site templates, applications, platforms, blog articles and dashboard
// users, served over a REST API with a per-entity response cache and
// per-route-class rate limiting.
//
// Startup order:
//
//  1. Configuration: Koanf v2 layered defaults, config.yaml, CURATOR_* env
//  2. Logging: zerolog, JSON or console per config
//  3. Cache: event bus, Prometheus bridge, registry with per-entity stores
//  4. Rate limiter: fixed-window policies per route class
//  5. Store: DuckDB with circuit breaker
//  6. HTTP server: Chi router under the supervisor tree
//
// Shutdown is graceful on SIGINT/SIGTERM: the supervisor tree drains the
// HTTP server, then the database is closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/curatorhq/curator/internal/api"
	"github.com/curatorhq/curator/internal/cache"
	"github.com/curatorhq/curator/internal/config"
	"github.com/curatorhq/curator/internal/logging"
	"github.com/curatorhq/curator/internal/metrics"
	"github.com/curatorhq/curator/internal/ratelimit"
	"github.com/curatorhq/curator/internal/store"
	"github.com/curatorhq/curator/internal/supervisor"
	"github.com/curatorhq/curator/internal/supervisor/services"
	"github.com/curatorhq/curator/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().
		Str("version", api.AppVersion).
		Msg("Starting Curator")

	capturer := telemetry.NewLogCapturer(cfg.Telemetry.CapturesPerSecond, cfg.Telemetry.CapturesBurst)

	// Cache: bus first so the metrics bridge sees every event, then the
	// registry with one store per entity.
	bus := cache.NewBus()
	metrics.ObserveCacheBus(bus)
	registry := cache.NewRegistry(cfg.Cache, bus)

	limiter := ratelimit.New(cfg.RateLimit, capturer)
	limiter.SetObserver(metrics.LimiterObserver())

	db, err := store.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	handler := api.NewHandler(cfg, db, registry, limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.NewRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewCacheSweeperService(registry, cfg.Cache.SweepInterval))
	tree.AddMaintenanceService(services.NewLimiterJanitorService(limiter, cfg.RateLimit.JanitorInterval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().
		Str("addr", server.Addr).
		Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	err = <-errCh
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().
				Str("service", svc.Name).
				Msg("Service did not stop within shutdown timeout")
		}
	}

	// Give in-flight log writes a moment before exit.
	time.Sleep(50 * time.Millisecond)
	logging.Info().Msg("Curator stopped")
	return nil
}
