// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package cursor

import (
	"maps"
	"slices"

	"github.com/tomtom215/warmonitor/internal/snapshot"
)

// NoPlanet marks an unknown station position.
const NoPlanet = -1

// CampaignRecord is what the differ remembers about an active campaign so it
// can classify the campaign once it disappears.
type CampaignRecord struct {
	CampaignID int              `json:"campaign_id"`
	Faction    snapshot.Faction `json:"faction"`
	Owner      snapshot.Faction `json:"owner"`
	Defense    bool             `json:"defense"`
	EventType  int              `json:"event_type,omitempty"`
}

// Cursor is the persisted differ state.
type Cursor struct {
	// Initialized is false until the first diff has primed the cursor.
	Initialized bool `json:"initialized"`

	LastDispatchID         int64   `json:"last_dispatch_id"`
	LastGlobalEventID      int64   `json:"last_global_event_id"`
	AnnouncedMajorOrderIDs []int64 `json:"announced_major_order_ids"`
	LastPatchNotesID       uint64  `json:"last_patch_notes_id"`

	DSSLastPlanetIndex        int            `json:"dss_last_planet_index"`
	DSSTacticalActionStatuses map[uint32]int `json:"dss_tactical_action_statuses"`

	// ActiveCampaigns is keyed by planet index.
	ActiveCampaigns map[int]CampaignRecord `json:"active_campaigns"`
}

// New returns an uninitialized cursor.
func New() Cursor {
	return Cursor{
		DSSLastPlanetIndex:        NoPlanet,
		DSSTacticalActionStatuses: make(map[uint32]int),
		ActiveCampaigns:           make(map[int]CampaignRecord),
	}
}

// Clone returns a deep copy.
func (c Cursor) Clone() Cursor {
	out := c
	out.AnnouncedMajorOrderIDs = slices.Clone(c.AnnouncedMajorOrderIDs)
	out.DSSTacticalActionStatuses = maps.Clone(c.DSSTacticalActionStatuses)
	if out.DSSTacticalActionStatuses == nil {
		out.DSSTacticalActionStatuses = make(map[uint32]int)
	}
	out.ActiveCampaigns = maps.Clone(c.ActiveCampaigns)
	if out.ActiveCampaigns == nil {
		out.ActiveCampaigns = make(map[int]CampaignRecord)
	}
	return out
}

// Announced reports whether a major order id was already announced.
func (c Cursor) Announced(id int64) bool {
	return slices.Contains(c.AnnouncedMajorOrderIDs, id)
}
