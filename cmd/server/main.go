// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

// Package main is the entry point for the Bibliograph server application.
//
// Bibliograph serves book recommendations over HTTP from precomputed
// artifacts: a book catalog, a user/book rating matrix, an item-item
// similarity matrix, SVD factor matrices, and a popularity ranking. The
// artifacts are produced offline and loaded at startup; the server itself
// performs no training.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Artifact store: Load precomputed recommendation artifacts from disk
//  3. Recommendation service: Wire the query engines over the loaded artifacts
//  4. HTTP server: REST API with Prometheus metrics and health probes
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (e.g. HTTP_PORT, ARTIFACTS_DIR, LOG_LEVEL)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Degraded Mode
//
// Missing or corrupt artifacts do not abort startup unless
// ARTIFACTS_REQUIRE_ALL=true. The server starts in degraded mode, the
// readiness probe reports 503, and queries backed by an absent artifact
// return 503 until the artifact is supplied and the server restarted.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (configurable timeout)
//
// # Example Usage
//
// Development with local artifacts:
//
//	export ARTIFACTS_DIR=./artifacts
//	export LOG_LEVEL=debug
//	export LOG_FORMAT=console
//	./bibliograph
//
// Docker:
//
//	docker run -d \
//	  -v /srv/artifacts:/data/artifacts \
//	  -p 8080:8080 \
//	  ghcr.io/tomtom215/bibliograph
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

	"github.com/tomtom215/bibliograph/internal/api"
	"github.com/tomtom215/bibliograph/internal/artifact"
	"github.com/tomtom215/bibliograph/internal/config"
	"github.com/tomtom215/bibliograph/internal/logging"
	"github.com/tomtom215/bibliograph/internal/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("artifacts_dir", cfg.Artifacts.Dir).
		Msg("Starting Bibliograph")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := artifact.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.Artifacts.Dir).Msg("Failed to open artifact store")
	}

	result, err := store.LoadAll(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("Artifact load aborted")
	}
	logging.Info().
		Strs("loaded", result.Loaded).
		Strs("missing", result.Missing).
		Msg("Artifact load complete")
	if len(result.Missing) > 0 {
		if cfg.Artifacts.RequireAll {
			logging.Fatal().Strs("missing", result.Missing).Msg("Required artifacts missing")
		}
		logging.Warn().Strs("missing", result.Missing).Msg("Starting in degraded mode")
	}

	policy := recommend.Policy{
		MinSimilarity:   cfg.Recommend.MinSimilarity,
		GenreMinRatings: cfg.Recommend.GenreMinRatings,
		GenreLimit:      cfg.Recommend.GenreLimit,
		DefaultCount:    cfg.API.DefaultCount,
		MaxCount:        cfg.API.MaxCount,
	}
	svc, err := recommend.NewService(store, policy)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation service")
	}

	stats := svc.Stats(ctx)
	logging.Info().
		Int("books", stats.Books).
		Int("users", stats.Users).
		Int("ratings", stats.Ratings).
		Bool("ready", stats.Ready).
		Msg("Recommendation service initialized")

	router := api.NewRouter(cfg, store, svc)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
		_ = server.Close()
	}

	logging.Info().Msg("Application stopped gracefully")
}
