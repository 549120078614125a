// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/warmonitor/internal/config"
)

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:           upstreamURL,
			WarID:             801,
			ClientName:        "warmonitor-test",
			Timeout:           time.Second,
			RetryDelay:        time.Millisecond,
			RequestsPerSecond: 100,
			Burst:             10,
		},
		Pipeline: config.PipelineConfig{
			Interval:        time.Hour,
			Locales:         []string{"en-US"},
			CanonicalLocale: "en-US",
			NewsWindow:      time.Hour,
			StaleAfter:      time.Minute,
		},
		Tracker: config.TrackerConfig{Window: 5, BootstrapSpread: 1.1, Seed: 1},
		Cursor:  config.CursorConfig{InMemory: true},
		Server: config.ServerConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    18420,
			Timeout: time.Second,
		},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}
}

func TestNewApp(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()

	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantError bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "server disabled", mutate: func(c *config.Config) { c.Server.Enabled = false }},
		{name: "all sources", mutate: func(c *config.Config) {
			c.Steam = config.SteamConfig{Enabled: true, BaseURL: upstream.URL, AppID: 553850}
			c.Secondary = config.SecondaryConfig{Enabled: true, BaseURL: upstream.URL}
		}},
		{name: "missing names file", mutate: func(c *config.Config) {
			c.Pipeline.NamesFile = "/nonexistent/names.yaml"
		}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(upstream.URL)
			tt.mutate(cfg)

			a, err := newApp(cfg)
			if tt.wantError {
				if err == nil {
					a.close()
					t.Fatal("newApp() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("newApp() error = %v", err)
			}
			defer a.close()

			if a.tree == nil || a.store == nil || a.bus == nil {
				t.Fatalf("newApp() left components unset: %+v", a)
			}
		})
	}
}

func TestAppServeStops(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()

	cfg := testConfig(upstream.URL)
	cfg.Server.Enabled = false

	a, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := a.tree.ServeBackground(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor tree did not stop after cancel")
	}
}
