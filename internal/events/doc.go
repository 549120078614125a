// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

// Package events hands change events to in-process consumers over a
// watermill gochannel pub/sub. Each event kind has its own topic.
package events
