// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

/*
Package sync pulls raw war state from every upstream source and drives the
poll cycle that turns it into snapshots and change events.

Components:
  - Aggregator: fetches every source for one cycle and returns a RawBundle
  - Manager: runs cycles on a fixed period, never overlapping, and exposes
    the latest snapshot, change events and tracker to the presentation layer

Cycle:
  1. Aggregator.Pull (concurrent fetches, waits for all)
  2. snapshot.Builder.Build (skipped when the canonical locale is missing)
  3. tracker.Tracker.Update
  4. differ.Differ.Diff against the persisted cursor
  5. cursor.Store.Save, then publish the change events

A failed or skipped cycle leaves the previous snapshot in place.
*/
package sync
