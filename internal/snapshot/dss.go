// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"strings"
	"time"
)

// Effect value-type slots with a modeled meaning.
const (
	EffectSlotCountDelta = 1
	EffectSlotFaction    = 3
	EffectSlotItemMix    = 4
	EffectSlotEnemyHash  = 13
)

// GalacticWarEffect is an entry of the effect catalogue. Identity is the ID
// only; two effects with equal IDs are the same effect regardless of content.
type GalacticWarEffect struct {
	ID         uint32        `json:"id"`
	Type       int           `json:"type"`
	Name       string        `json:"name"`
	Known      bool          `json:"known"`
	GameplayID uint32        `json:"gameplay_id,omitempty"`
	Values     map[int]int64 `json:"values,omitempty"`
}

// Slot returns the raw payload of a value-type slot.
func (e *GalacticWarEffect) Slot(valueType int) (int64, bool) {
	v, ok := e.Values[valueType]
	return v, ok
}

// CountDelta is slot 1.
func (e *GalacticWarEffect) CountDelta() (int64, bool) { return e.Slot(EffectSlotCountDelta) }

// Faction is slot 3.
func (e *GalacticWarEffect) Faction() (Faction, bool) {
	v, ok := e.Slot(EffectSlotFaction)
	return Faction(v), ok
}

// ItemMixID is slot 4.
func (e *GalacticWarEffect) ItemMixID() (int64, bool) { return e.Slot(EffectSlotItemMix) }

// EnemyHash is slot 13.
func (e *GalacticWarEffect) EnemyHash() (int64, bool) { return e.Slot(EffectSlotEnemyHash) }

// TacticalStatus is the lifecycle state of a tactical action.
type TacticalStatus int

const (
	StatusInactive   TacticalStatus = 0
	StatusPreparing  TacticalStatus = 1
	StatusActive     TacticalStatus = 2
	StatusOnCooldown TacticalStatus = 3
)

func (s TacticalStatus) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusPreparing:
		return "preparing"
	case StatusActive:
		return "active"
	case StatusOnCooldown:
		return "on_cooldown"
	default:
		return "unknown"
	}
}

// Cost is one resource requirement of a tactical action.
type Cost struct {
	ID                string        `json:"id"`
	ItemMixID         uint32        `json:"item_mix_id"`
	Target            float64       `json:"target"`
	Current           float64       `json:"current"`
	DeltaPerSecond    float64       `json:"delta_per_second"`
	MaxDonation       int64         `json:"max_donation"`
	MaxDonationPeriod time.Duration `json:"max_donation_period"`
}

// Progress is Current/Target, 0 when the target is unset.
func (c Cost) Progress() float64 {
	if c.Target <= 0 {
		return 0
	}
	return c.Current / c.Target
}

// TacticalAction is a fundable station capability.
type TacticalAction struct {
	ID          uint32         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Status      TacticalStatus `json:"status"`
	StatusEnd   time.Time      `json:"status_end"`
	Costs       []Cost         `json:"costs,omitempty"`
	Known       bool           `json:"known"`
}

// EagleStormName is the tactical action that extends a defense event while
// active over the defended planet.
const EagleStormName = "EAGLE STORM"

// knownTacticalActions lists upstream tactical action names with modeled
// behaviour or rendering.
var knownTacticalActions = map[string]bool{
	EagleStormName:                true,
	"ORBITAL BLOCKADE":            true,
	"HEAVY ORDNANCE DISTRIBUTION": true,
	"MAGNETIC SHIELDING":          true,
	"LOCAL SUPERIORITY":           true,
	"SUPER EARTH ARMED FORCES":    true,
}

func isKnownTacticalAction(name string) bool {
	return knownTacticalActions[strings.ToUpper(strings.TrimSpace(name))]
}

// VoteOption is one candidate in a relocation poll.
type VoteOption struct {
	PlanetIndex int   `json:"planet_index"`
	Votes       int64 `json:"votes"`
}

// Votes is the pending station relocation poll.
type Votes struct {
	ElectionID string       `json:"election_id"`
	End        time.Time    `json:"end"`
	Options    []VoteOption `json:"options"`
}

// DSS is the Democracy Space Station. PlanetIndex is the orbited planet.
type DSS struct {
	ID              uint32           `json:"id"`
	PlanetIndex     int              `json:"planet_index"`
	MoveAt          time.Time        `json:"move_at"`
	Flags           int              `json:"flags"`
	TacticalActions []TacticalAction `json:"tactical_actions"`
	Votes           *Votes           `json:"votes,omitempty"`
}
