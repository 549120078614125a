// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

// Package logging provides the zerolog-based structured logger shared by every
// warmonitor component.
//
// The package keeps a single global logger configured once at startup and
// exposes level helpers so call sites read as:
//
//	logging.Info().Str("source", "war_status").Msg("Fetched payload")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Locale skipped")
//
// Every poll cycle runs with its own correlation id stored in the context, so
// all lines written through [Ctx] during a cycle can be grouped together.
//
// Adapters:
//   - [NewSlogLogger] bridges zerolog into log/slog for sutureslog.
//   - [NewWatermillAdapter] implements watermill.LoggerAdapter.
//
// [SanitizeToken] masks credentials before they reach a log line.
package logging
