// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

// Package differ compares a new snapshot against the persisted cursor and
// decides what changed: new dispatches, global events, major orders, patch
// notes, campaign starts and ends, and space station movements.
//
// Every category is idempotent. Diffing the same snapshot again with the
// cursor returned by the first pass yields no events.
package differ
