// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

/*
Package snapshot turns one poll cycle's raw payloads into an immutable,
cross-referenced picture of the galactic war.

# Model

[Snapshot] is the root aggregate. Planets are keyed by their stable index;
every child entity (region, campaign, event) refers back to its planet by
index and is resolved through [Snapshot.Planet] rather than by pointer, so
nothing outlives the snapshot it was built in.

Entities are never mutated after [Builder.Build] returns. Long-lived state
such as liberation trends lives in internal/tracker, keyed by the same
identities.

# Building

[Builder.Build] runs a fixed sequence of steps over a models.RawBundle:

 1. war start = now - war status time
 2. planets from war info merged with status
 3. galactic war effects from the effect catalogue
 4. active effects attached to planets
 5. regions attached to planets
 6. defense events
 7. campaigns, sorted by player count (descending)
 8. gambit detection
 9. major orders (sorted by expiry, descending) and assignment tagging
 10. dispatches (ascending id) and global events
 11. space station, votes and the Eagle Storm event extension
 12. personal order
 13. build timestamp

Missing optional sections yield empty sub-entities. A missing planet list
returns [ErrNoPlanets].
*/
package snapshot
