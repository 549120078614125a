// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

/*
Package api serves the read-only HTTP status surface of the pipeline.

Routes:
  - GET /healthz: freshness watchdog, 503 when the snapshot is stale
  - GET /metrics: prometheus exposition
  - GET /api/v1/snapshot: latest snapshot
  - GET /api/v1/events: change events of the most recent cycle
  - GET /api/v1/trends/liberation/{planet}: liberation rate window
  - GET /api/v1/planets/{planet}/end-time: projected campaign completion

Routing uses chi with go-chi/cors and go-chi/httprate middleware.
*/
package api
