// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/warmonitor/config.yaml",
	"/etc/warmonitor/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// Tracker heuristic defaults. These are tunable game-balance assumptions.
const (
	DefaultTrackerWindow   = 15
	DefaultBootstrapSpread = 1.1
	DefaultGambitMaxRegen  = 0.03
)

func defaultConfig() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			BaseURL:           "https://api.live.prod.thehelldiversgame.com",
			WarID:             801,
			ClientName:        "warmonitor",
			Timeout:           10 * time.Second,
			Retries:           2,
			RetryDelay:        time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Steam: SteamConfig{
			Enabled:   true,
			BaseURL:   "https://api.steampowered.com",
			AppID:     553850,
			FeedLabel: "Community Announcements",
			NewsCount: 10,
		},
		Secondary: SecondaryConfig{
			Enabled: false,
		},
		Pipeline: PipelineConfig{
			Interval:        time.Minute,
			Locales:         []string{"en-US"},
			CanonicalLocale: "en-US",
			NewsWindow:      7 * 24 * time.Hour,
			StaleAfter:      10 * time.Minute,
		},
		Tracker: TrackerConfig{
			Window:          DefaultTrackerWindow,
			BootstrapSpread: DefaultBootstrapSpread,
			GambitMaxRegen:  DefaultGambitMaxRegen,
		},
		Cursor: CursorConfig{
			Dir: "/data/cursor",
		},
		Server: ServerConfig{
			Enabled:         true,
			Host:            "0.0.0.0",
			Port:            8420,
			Timeout:         15 * time.Second,
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths accept comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"pipeline.locales",
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"upstream_base_url":            "upstream.base_url",
	"war_id":                       "upstream.war_id",
	"upstream_client_name":         "upstream.client_name",
	"upstream_contact":             "upstream.contact",
	"upstream_timeout":             "upstream.timeout",
	"upstream_retries":             "upstream.retries",
	"upstream_retry_delay":         "upstream.retry_delay",
	"upstream_requests_per_second": "upstream.requests_per_second",
	"upstream_burst":               "upstream.burst",

	"steam_enabled":    "steam.enabled",
	"steam_base_url":   "steam.base_url",
	"steam_app_id":     "steam.app_id",
	"steam_feed_label": "steam.feed_label",
	"steam_news_count": "steam.news_count",

	"secondary_enabled":  "secondary.enabled",
	"secondary_base_url": "secondary.base_url",
	"secondary_token":    "secondary.token",

	"poll_interval":    "pipeline.interval",
	"locales":          "pipeline.locales",
	"canonical_locale": "pipeline.canonical_locale",
	"news_window":      "pipeline.news_window",
	"stale_after":      "pipeline.stale_after",
	"names_file":       "pipeline.names_file",

	"tracker_window":           "tracker.window",
	"tracker_bootstrap_spread": "tracker.bootstrap_spread",
	"tracker_gambit_max_regen": "tracker.gambit_max_regen",
	"tracker_seed":             "tracker.seed",

	"cursor_dir":       "cursor.dir",
	"cursor_in_memory": "cursor.in_memory",

	"http_enabled":        "server.enabled",
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"rate_limit_requests": "server.rate_limit_reqs",
	"rate_limit_window":   "server.rate_limit_window",
	"cors_origins":        "server.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths. Unmapped
// variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
