// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package main

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/tomtom215/warmonitor/internal/api"
	"github.com/tomtom215/warmonitor/internal/config"
	"github.com/tomtom215/warmonitor/internal/cursor"
	"github.com/tomtom215/warmonitor/internal/events"
	"github.com/tomtom215/warmonitor/internal/logging"
	"github.com/tomtom215/warmonitor/internal/snapshot"
	"github.com/tomtom215/warmonitor/internal/supervisor"
	"github.com/tomtom215/warmonitor/internal/supervisor/services"
	"github.com/tomtom215/warmonitor/internal/sync"
	"github.com/tomtom215/warmonitor/internal/tracker"
	"github.com/tomtom215/warmonitor/internal/upstream"
)

// app holds the wired components and what must be closed on exit.
type app struct {
	tree  *supervisor.SupervisorTree
	store cursor.Store
	bus   *events.Bus
}

func newApp(cfg *config.Config) (*app, error) {
	catalogue, err := snapshot.LoadCatalogue(cfg.Pipeline.NamesFile)
	if err != nil {
		return nil, fmt.Errorf("load names catalogue: %w", err)
	}

	store, err := cursor.OpenBadger(cfg.Cursor.Dir, cfg.Cursor.InMemory)
	if err != nil {
		return nil, fmt.Errorf("open cursor store: %w", err)
	}

	var steam sync.SteamSource
	if cfg.Steam.Enabled {
		steam = upstream.NewSteamClient(cfg.Steam, cfg.Upstream)
	}
	var secondary sync.SecondarySource
	if cfg.Secondary.Enabled {
		secondary = upstream.NewSecondaryClient(cfg.Secondary, cfg.Upstream)
	}

	aggregator := sync.NewAggregator(sync.AggregatorConfig{
		Locales:         cfg.Pipeline.Locales,
		CanonicalLocale: cfg.Pipeline.CanonicalLocale,
		NewsWindow:      cfg.Pipeline.NewsWindow,
	}, upstream.NewWarClient(cfg.Upstream), steam, secondary)

	trk := tracker.New(tracker.Config{
		Window:          cfg.Tracker.Window,
		BootstrapSpread: cfg.Tracker.BootstrapSpread,
		Interval:        cfg.Pipeline.Interval,
		Seed:            cfg.Tracker.Seed,
	})
	builder := snapshot.NewBuilder(catalogue, cfg.Tracker.GambitMaxRegen)
	bus := events.NewBus(events.DefaultBuffer)
	manager := sync.NewManager(cfg.Pipeline.Interval, aggregator, builder, trk, store, bus)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddPipelineService(services.NewPipelineService(manager))
	tree.AddPipelineService(services.NewEventLogService(bus))

	if cfg.Server.Enabled {
		addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
		handler := api.NewHandler(manager, cfg.Pipeline.StaleAfter)
		router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Server)))
		server := &http.Server{
			Addr:              addr,
			Handler:           router.SetupChi(),
			ReadHeaderTimeout: cfg.Server.Timeout,
			ReadTimeout:       cfg.Server.Timeout,
			WriteTimeout:      cfg.Server.Timeout,
		}
		tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.Timeout))
	}

	return &app{tree: tree, store: store, bus: bus}, nil
}

// close releases the bus and the cursor store after the tree has stopped.
func (a *app) close() {
	if err := a.bus.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event bus")
	}
	if err := a.store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing cursor store")
	}
}
