// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package api

import "time"

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data,omitempty"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata describes the response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	// BuiltAt is the build time of the snapshot the data came from.
	BuiltAt *time.Time `json:"built_at,omitempty"`
	Stale   bool       `json:"stale,omitempty"`
}

// APIError is a machine-readable error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthStatus is the /healthz payload.
type HealthStatus struct {
	Status        string     `json:"status"`
	LastBuildTime *time.Time `json:"last_build_time,omitempty"`
	SnapshotAge   float64    `json:"snapshot_age_seconds,omitempty"`
	StaleAfter    float64    `json:"stale_after_seconds"`
	Uptime        float64    `json:"uptime_seconds"`
}

// TrendResponse is a rate tracker window.
type TrendResponse struct {
	Key         int        `json:"key"`
	Value       float64    `json:"value"`
	Target      float64    `json:"target"`
	RatePerHour *float64   `json:"rate_per_hour,omitempty"`
	CompleteAt  *time.Time `json:"complete_at,omitempty"`
	LastUpdate  time.Time  `json:"last_update"`
	Samples     []float64  `json:"samples"`
}
