// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package config

import "time"

// Config is the root configuration for warmonitor.
type Config struct {
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Steam     SteamConfig     `koanf:"steam"`
	Secondary SecondaryConfig `koanf:"secondary"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Tracker   TrackerConfig   `koanf:"tracker"`
	Cursor    CursorConfig    `koanf:"cursor"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// UpstreamConfig describes the primary war-state API.
type UpstreamConfig struct {
	BaseURL string `koanf:"base_url" validate:"required"`
	WarID   int    `koanf:"war_id" validate:"gte=0"`

	// ClientName and Contact are sent as X-Super-Client / X-Super-Contact
	// headers; community mirrors of the API reject anonymous callers.
	ClientName string `koanf:"client_name"`
	Contact    string `koanf:"contact"`

	Timeout    time.Duration `koanf:"timeout" validate:"gt=0"`
	Retries    int           `koanf:"retries" validate:"gte=0,lte=10"`
	RetryDelay time.Duration `koanf:"retry_delay" validate:"gte=0"`

	// RequestsPerSecond paces outgoing requests; 0 disables pacing.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int     `koanf:"burst" validate:"gte=1"`
}

// SteamConfig describes the public Steam endpoints.
type SteamConfig struct {
	Enabled   bool   `koanf:"enabled"`
	BaseURL   string `koanf:"base_url"`
	AppID     int    `koanf:"app_id" validate:"gte=0"`
	FeedLabel string `koanf:"feed_label"`
	NewsCount int    `koanf:"news_count" validate:"gte=0,lte=100"`
}

// SecondaryConfig describes the authenticated API serving DSS votes and
// personal orders.
type SecondaryConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`
	Token   string `koanf:"token"`
}

// PipelineConfig controls the poll cycle.
type PipelineConfig struct {
	Interval time.Duration `koanf:"interval" validate:"gte=1s"`

	// Locales are fetched every cycle. CanonicalLocale must be among them;
	// its payload drives every numeric decision.
	Locales         []string `koanf:"locales" validate:"min=1,dive,required"`
	CanonicalLocale string   `koanf:"canonical_locale" validate:"required"`

	// NewsWindow bounds the dispatch feed to entries newer than now minus window.
	NewsWindow time.Duration `koanf:"news_window" validate:"gt=0"`

	// StaleAfter marks the snapshot stale when the last build is older.
	StaleAfter time.Duration `koanf:"stale_after" validate:"gt=0"`

	// NamesFile is an optional YAML catalogue of localized planet names.
	NamesFile string `koanf:"names_file"`
}

// TrackerConfig holds the rate tracker heuristics.
type TrackerConfig struct {
	Window          int     `koanf:"window" validate:"gte=1,lte=1000"`
	BootstrapSpread float64 `koanf:"bootstrap_spread" validate:"gte=1"`
	GambitMaxRegen  float64 `koanf:"gambit_max_regen" validate:"gte=0"`
	Seed            uint64  `koanf:"seed"`
}

// CursorConfig selects where the differ cursor is persisted.
type CursorConfig struct {
	Dir      string `koanf:"dir"`
	InMemory bool   `koanf:"in_memory"`
}

// ServerConfig configures the read-only status HTTP server.
type ServerConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig configures internal/logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
