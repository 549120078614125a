// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package models

// ============================================================================
// News feed (per locale)
// ============================================================================
// Endpoint: GET /api/NewsFeed/{warId}?fromTimestamp={warSeconds}

// NewsItem is one dispatch from the in-game news feed.
type NewsItem struct {
	ID        int64  `json:"id"`
	Published int64  `json:"published"` // seconds since war start
	Type      int    `json:"type"`
	TagIDs    []int  `json:"tagIds"`
	Message   string `json:"message"`
}

// ============================================================================
// Assignments (per locale)
// ============================================================================
// Endpoint: GET /api/v2/Assignment/War/{warId}
// The personal order from the secondary API uses the same shape.

// Assignment is a major order (or personal order).
type Assignment struct {
	ID32      int64             `json:"id32"`
	Progress  []int64           `json:"progress"`
	ExpiresIn int64             `json:"expiresIn"` // seconds from fetch time
	Setting   AssignmentSetting `json:"setting"`
}

// AssignmentSetting carries the localized text, tasks and rewards.
type AssignmentSetting struct {
	Type            int              `json:"type"`
	OverrideTitle   string           `json:"overrideTitle"`
	OverrideBrief   string           `json:"overrideBrief"`
	TaskDescription string           `json:"taskDescription"`
	Tasks           []AssignmentTask `json:"tasks"`
	Reward          *Reward          `json:"reward"`
	Rewards         []Reward         `json:"rewards"`
	Flags           int              `json:"flags"`
}

// AssignmentTask is a task with parallel value / value-type slots.
type AssignmentTask struct {
	Type       int     `json:"type"`
	Values     []int64 `json:"values"`
	ValueTypes []int   `json:"valueTypes"`
}

// Reward granted on assignment completion.
type Reward struct {
	Type   int    `json:"type"`
	ID32   uint32 `json:"id32"`
	Amount int64  `json:"amount"`
}

// ============================================================================
// Space station (locale independent)
// ============================================================================
// Endpoint: GET /api/v2/SpaceStation/War/{warId}/{stationId}

// SpaceStation is the Democracy Space Station detail.
type SpaceStation struct {
	ID32                      uint32           `json:"id32"`
	PlanetIndex               int              `json:"planetIndex"`
	CurrentElectionEndWarTime int64            `json:"currentElectionEndWarTime"`
	Flags                     int              `json:"flags"`
	TacticalActions           []TacticalAction `json:"tacticalActions"`
}

// TacticalAction is a fundable station capability.
type TacticalAction struct {
	ID32                         uint32               `json:"id32"`
	MediaID32                    uint32               `json:"mediaId32"`
	Name                         string               `json:"name"`
	Description                  string               `json:"description"`
	StrategicDescription         string               `json:"strategicDescription"`
	Status                       int                  `json:"status"`
	StatusExpireAtWarTimeSeconds int64                `json:"statusExpireAtWarTimeSeconds"`
	Cost                         []TacticalActionCost `json:"cost"`
	EffectIDs                    []uint32             `json:"effectIds"`
	ActiveEffectIDs              []uint32             `json:"activeEffectIds"`
}

// TacticalActionCost is one resource requirement of a tactical action.
type TacticalActionCost struct {
	ID                       string  `json:"id"`
	ItemMixID                uint32  `json:"itemMixId"`
	TargetValue              float64 `json:"targetValue"`
	CurrentValue             float64 `json:"currentValue"`
	DeltaPerSecond           float64 `json:"deltaPerSecond"`
	MaxDonationAmount        int64   `json:"maxDonationAmount"`
	MaxDonationPeriodSeconds int64   `json:"maxDonationPeriodSeconds"`
}

// ============================================================================
// Galactic war effects (locale independent)
// ============================================================================
// Endpoint: GET /api/WarSeason/GalacticWarEffects

// GalacticWarEffect is one entry of the effect catalogue. Values and
// ValueTypes are parallel arrays forming a sparse slot dictionary.
type GalacticWarEffect struct {
	ID               uint32  `json:"id"`
	GameplayEffectID uint32  `json:"gameplayEffectId32"`
	EffectType       int     `json:"effectType"`
	Flags            int     `json:"flags"`
	NameHash         uint32  `json:"nameHash"`
	ValueTypes       []int   `json:"valueTypes"`
	Values           []int64 `json:"values"`
}

// ============================================================================
// War summary (locale independent)
// ============================================================================
// Endpoint: GET /api/Stats/war/{warId}/summary

// WarSummary holds galaxy-wide and per-planet counters.
type WarSummary struct {
	GalaxyStats  PlanetStats   `json:"galaxy_stats"`
	PlanetsStats []PlanetStats `json:"planets_stats"`
}

// PlanetStats are historical counters for a planet (or the galaxy).
type PlanetStats struct {
	PlanetIndex        int   `json:"planetIndex"`
	MissionsWon        int64 `json:"missionsWon"`
	MissionsLost       int64 `json:"missionsLost"`
	MissionTime        int64 `json:"missionTime"`
	BugKills           int64 `json:"bugKills"`
	AutomatonKills     int64 `json:"automatonKills"`
	IlluminateKills    int64 `json:"illuminateKills"`
	BulletsFired       int64 `json:"bulletsFired"`
	BulletsHit         int64 `json:"bulletsHit"`
	TimePlayed         int64 `json:"timePlayed"`
	Deaths             int64 `json:"deaths"`
	Revives            int64 `json:"revives"`
	Friendlies         int64 `json:"friendlies"`
	MissionSuccessRate int64 `json:"missionSuccessRate"`
	Accuracy           int64 `json:"accurracy"` // (sic) upstream spelling
}
