// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

// Package config loads warmonitor configuration.
//
// Values are layered with koanf, lowest priority first:
//
//  1. Struct defaults ([defaultConfig])
//  2. YAML file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables (explicit mapping, see [envTransformFunc])
//
// The merged result is checked by [Config.Validate] before use.
//
// Example config.yaml:
//
//	upstream:
//	  base_url: https://api.live.prod.thehelldiversgame.com
//	  war_id: 801
//	pipeline:
//	  interval: 1m
//	  locales: [en-US, fr-FR, de-DE]
//	secondary:
//	  enabled: true
//	  token: 
package config
