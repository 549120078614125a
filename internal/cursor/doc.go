// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

// Package cursor persists the differ's cursor: the high-water marks and
// last-known states that decide what has already been announced.
//
// Every field is stored under its own key and written independently, so a
// partially applied save never corrupts the other fields. Stores are read once
// at startup and written after each successful diff.
package cursor
