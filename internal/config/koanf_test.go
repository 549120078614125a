// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Pipeline.Interval != time.Minute {
		t.Errorf("Pipeline.Interval = %v, want 1m", cfg.Pipeline.Interval)
	}
	if cfg.Upstream.Retries != 2 {
		t.Errorf("Upstream.Retries = %d, want 2", cfg.Upstream.Retries)
	}
	if cfg.Tracker.Window != 15 {
		t.Errorf("Tracker.Window = %d, want 15", cfg.Tracker.Window)
	}
	if cfg.Tracker.BootstrapSpread != 1.1 {
		t.Errorf("Tracker.BootstrapSpread = %v, want 1.1", cfg.Tracker.BootstrapSpread)
	}
	if cfg.Tracker.GambitMaxRegen != 0.03 {
		t.Errorf("Tracker.GambitMaxRegen = %v, want 0.03", cfg.Tracker.GambitMaxRegen)
	}
	if cfg.Steam.FeedLabel != "Community Announcements" {
		t.Errorf("Steam.FeedLabel = %q", cfg.Steam.FeedLabel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
upstream:
  war_id: 802
pipeline:
  locales: [en-US, fr-FR]
  interval: 2m
cursor:
  in_memory: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOCALES", "en-US, de-DE ,fr-FR")
	t.Setenv("UPSTREAM_RETRIES", "4")
	t.Setenv("SOME_UNRELATED_VAR", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Upstream.WarID != 802 {
		t.Errorf("WarID = %d, want 802 (file layer)", cfg.Upstream.WarID)
	}
	if cfg.Pipeline.Interval != 2*time.Minute {
		t.Errorf("Interval = %v, want 2m", cfg.Pipeline.Interval)
	}
	if cfg.Upstream.Retries != 4 {
		t.Errorf("Retries = %d, want 4 (env layer)", cfg.Upstream.Retries)
	}
	want := []string{"en-US", "de-DE", "fr-FR"}
	if strings.Join(cfg.Pipeline.Locales, ",") != strings.Join(want, ",") {
		t.Errorf("Locales = %v, want %v", cfg.Pipeline.Locales, want)
	}
	if !cfg.Cursor.InMemory {
		t.Error("Cursor.InMemory should come from the file")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"WAR_ID":          "upstream.war_id",
		"SECONDARY_TOKEN": "secondary.token",
		"LOG_LEVEL":       "logging.level",
		"HOME":            "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"canonical not in locales", func(c *Config) { c.Pipeline.CanonicalLocale = "de-DE" }, "CANONICAL_LOCALE"},
		{"no locales", func(c *Config) { c.Pipeline.Locales = nil }, "Locales"},
		{"interval too short", func(c *Config) { c.Pipeline.Interval = 100 * time.Millisecond }, "Interval"},
		{"stale shorter than interval", func(c *Config) { c.Pipeline.StaleAfter = 30 * time.Second }, "STALE_AFTER"},
		{"secondary without token", func(c *Config) { c.Secondary.Enabled = true; c.Secondary.BaseURL = "https://example.com" }, "SECONDARY_TOKEN"},
		{"upstream url with path", func(c *Config) { c.Upstream.BaseURL = "https://example.com/api" }, "UPSTREAM_BASE_URL"},
		{"steam bad scheme", func(c *Config) { c.Steam.BaseURL = "ftp://steam" }, "STEAM_BASE_URL"},
		{"window zero", func(c *Config) { c.Tracker.Window = 0 }, "Window"},
		{"cursor without dir", func(c *Config) { c.Cursor.Dir = "" }, "CURSOR_DIR"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "Format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
