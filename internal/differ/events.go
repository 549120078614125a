// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package differ

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/warmonitor/internal/snapshot"
)

// SchemaVersion is the current change event schema version.
const SchemaVersion = 1

// Kind identifies the category of a change event.
type Kind string

const (
	KindDispatchPublished    Kind = "dispatch_published"
	KindGlobalEventPublished Kind = "global_event_published"
	KindMajorOrderAnnounced  Kind = "major_order_announced"
	KindCampaignStarted      Kind = "campaign_started"
	KindCampaignEnded        Kind = "campaign_ended"
	KindPatchNotesPublished  Kind = "patch_notes_published"
	KindDSSMoved             Kind = "dss_moved"
	KindTacticalActionStatus Kind = "tactical_action_status_changed"
)

// Kinds lists every event kind.
var Kinds = []Kind{
	KindDispatchPublished,
	KindGlobalEventPublished,
	KindMajorOrderAnnounced,
	KindCampaignStarted,
	KindCampaignEnded,
	KindPatchNotesPublished,
	KindDSSMoved,
	KindTacticalActionStatus,
}

// Outcome classifies how a campaign ended.
type Outcome string

const (
	OutcomeDefenseWon        Outcome = "defense_won"
	OutcomeAttackWon         Outcome = "attack_won"
	OutcomePlanetLost        Outcome = "planet_lost"
	OutcomeAttackCampaignWon Outcome = "attack_campaign_won"
	// OutcomeExpired is a campaign that ended with the planet still held by
	// a non-human faction.
	OutcomeExpired Outcome = "expired"
)

// ChangeEvent is one detected change. Only the fields relevant to Kind are set.
type ChangeEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	Kind          Kind      `json:"kind"`
	Timestamp     time.Time `json:"timestamp"`

	// Campaigns and station movement
	PlanetIndex     int              `json:"planet_index"`
	FromPlanetIndex int              `json:"from_planet_index,omitempty"`
	CampaignID      int              `json:"campaign_id,omitempty"`
	Defense         bool             `json:"defense,omitempty"`
	Faction         snapshot.Faction `json:"faction,omitempty"`
	Outcome         Outcome          `json:"outcome,omitempty"`

	// Tactical actions
	ActionID   uint32                  `json:"action_id,omitempty"`
	ActionName string                  `json:"action_name,omitempty"`
	FromStatus snapshot.TacticalStatus `json:"from_status"`
	ToStatus   snapshot.TacticalStatus `json:"to_status"`

	// Published content
	Dispatch    *snapshot.Dispatch    `json:"dispatch,omitempty"`
	GlobalEvent *snapshot.GlobalEvent `json:"global_event,omitempty"`
	MajorOrder  *snapshot.MajorOrder  `json:"major_order,omitempty"`
	PatchNotes  *snapshot.SteamNews   `json:"patch_notes,omitempty"`
}

// NewChangeEvent creates an event of the given kind with a fresh id.
func NewChangeEvent(kind Kind) ChangeEvent {
	return ChangeEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Kind:          kind,
		Timestamp:     time.Now().UTC(),
	}
}
