// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

/*
Package models holds the raw payload types returned by the upstream sources.

These structs mirror the wire JSON closely and are decoded with goccy/go-json.
Unknown fields are ignored so that upstream additions never break decoding.
All timestamps are war-relative seconds unless a field says otherwise; the
snapshot builder converts them to absolute times.

Sources:
  - War status, war info, news feed, assignments, space station, galactic war
    effects and war summary come from the primary war-state API.
  - Player count and news items come from the public Steam Web API.
  - Station votes and the personal order come from the authenticated secondary API.

[RawBundle] collects one poll cycle's worth of payloads.
*/
package models
