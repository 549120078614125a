// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

// Package main is the entry point for warmonitor.
//
// warmonitor polls the galactic war API once per interval, builds an
// immutable snapshot of the war, tracks liberation and progress rates, and
// diffs consecutive snapshots into change events for a presentation layer.
//
// # Startup order
//
//  1. Configuration: defaults, optional config.yaml, environment (koanf v2)
//  2. Logging: zerolog global logger
//  3. Cursor store: badger, one key per cursor field
//  4. Upstream clients: war API, Steam, secondary API
//  5. Pipeline: aggregator, snapshot builder, rate tracker, differ
//  6. Event bus: in-process watermill gochannel
//  7. Supervisor tree: pipeline layer and status server
//
// # Signal handling
//
// SIGINT and SIGTERM cancel the root context. The running poll cycle
// finishes, the status server drains, then the cursor store is closed.
//
// # Example
//
//	export UPSTREAM_CLIENT_NAME=my-bot
//	export UPSTREAM_CONTACT=ops@example.com
//	export CURSOR_DIR=/var/lib/warmonitor
//	./warmonitor
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/warmonitor/internal/config"
	"github.com/tomtom215/warmonitor/internal/logging"
)

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
		Output:    os.Stderr,
	})

	logging.Info().
		Str("upstream", cfg.Upstream.BaseURL).
		Int("war_id", cfg.Upstream.WarID).
		Strs("locales", cfg.Pipeline.Locales).
		Dur("interval", cfg.Pipeline.Interval).
		Bool("steam", cfg.Steam.Enabled).
		Bool("secondary", cfg.Secondary.Enabled).
		Msg("Starting warmonitor")

	app, err := newApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer app.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := app.tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := app.tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("warmonitor stopped")
}
