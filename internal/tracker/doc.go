// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

// Package tracker keeps rolling windows of per-cycle value changes for
// tracked war quantities and projects completion times from them.
//
// Four families are tracked, each keyed by a stable identity:
//   - liberation progress by planet index (planets with an active campaign)
//   - region liberation by region settings hash
//   - major order task progress by (assignment id, task index)
//   - tactical action cost progress by (action id, item mix id)
//
// History survives across snapshots; snapshots themselves never hold it.
// A Tracker is written only by the poll cycle and may be read concurrently.
package tracker
