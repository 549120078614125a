// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package models

// ============================================================================
// War status (per locale)
// ============================================================================
// Endpoint: GET /api/WarSeason/{warId}/Status

// Position is a planet's location in normalized galaxy space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WarStatus is the primary per-locale war-state payload.
type WarStatus struct {
	WarID            int     `json:"warId"`
	Time             int64   `json:"time"` // seconds since war start
	ImpactMultiplier float64 `json:"impactMultiplier"`
	StoryBeatID32    uint32  `json:"storyBeatId32"`

	PlanetStatus        []PlanetStatus        `json:"planetStatus"`
	PlanetAttacks       []PlanetAttack        `json:"planetAttacks"`
	Campaigns           []Campaign            `json:"campaigns"`
	JointOperations     []JointOperation      `json:"jointOperations"`
	PlanetEvents        []PlanetEvent         `json:"planetEvents"`
	PlanetActiveEffects []PlanetActiveEffect  `json:"planetActiveEffects"`
	GlobalEvents        []GlobalEvent         `json:"globalEvents"`
	SpaceStations       []SpaceStationSummary `json:"spaceStations"`
	PlanetRegions       []PlanetRegionStatus  `json:"planetRegions"`
}

// PlanetStatus is the dynamic state of one planet.
type PlanetStatus struct {
	Index          int      `json:"index"`
	Owner          int      `json:"owner"` // faction id
	Health         int64    `json:"health"`
	RegenPerSecond float64  `json:"regenPerSecond"`
	Players        int      `json:"players"`
	Position       Position `json:"position"`
}

// PlanetAttack links an attacking planet to its target.
type PlanetAttack struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Campaign is an active military contest reported by the war status.
type Campaign struct {
	ID          int `json:"id"`
	PlanetIndex int `json:"planetIndex"`
	Type        int `json:"type"`
	Count       int `json:"count"`
	Race        int `json:"race"`
}

// JointOperation groups campaigns around a headquarters node.
type JointOperation struct {
	ID          int `json:"id"`
	PlanetIndex int `json:"planetIndex"`
	HQNodeIndex int `json:"hqNodeIndex"`
}

// PlanetEvent is a defense or invasion sub-state on a planet.
type PlanetEvent struct {
	ID                int     `json:"id"`
	PlanetIndex       int     `json:"planetIndex"`
	EventType         int     `json:"eventType"`
	Race              int     `json:"race"`
	Health            int64   `json:"health"`
	MaxHealth         int64   `json:"maxHealth"`
	StartTime         int64   `json:"startTime"`
	ExpireTime        int64   `json:"expireTime"`
	CampaignID        int     `json:"campaignId"`
	JointOperationIDs []int   `json:"jointOperationIds"`
	PotentialBuildUp  float64 `json:"potentialBuildUp"`
}

// PlanetActiveEffect attaches a galactic war effect to a planet.
type PlanetActiveEffect struct {
	Index            int    `json:"index"`
	GalacticEffectID uint32 `json:"galacticEffectId"`
}

// GlobalEvent is a galaxy-wide narrative or effect-only event.
type GlobalEvent struct {
	EventID        int64    `json:"eventId"`
	ID32           uint32   `json:"id32"`
	PortraitID32   uint32   `json:"portraitId32"`
	Title          string   `json:"title"`
	TitleID32      uint32   `json:"titleId32"`
	Message        string   `json:"message"`
	MessageID32    uint32   `json:"messageId32"`
	Race           int      `json:"race"`
	Flag           int      `json:"flag"`
	AssignmentID32 uint32   `json:"assignmentId32"`
	EffectIDs      []uint32 `json:"effectIds"`
	PlanetIndices  []int    `json:"planetIndices"`
	ExpireTime     int64    `json:"expireTime"`
}

// SpaceStationSummary is the station stub listed in the war status. Its id
// is required to fetch the station detail.
type SpaceStationSummary struct {
	ID32                      uint32 `json:"id32"`
	PlanetIndex               int    `json:"planetIndex"`
	CurrentElectionEndWarTime int64  `json:"currentElectionEndWarTime"`
	Flags                     int    `json:"flags"`
}

// PlanetRegionStatus is the dynamic state of a planet region.
type PlanetRegionStatus struct {
	PlanetIndex        int     `json:"planetIndex"`
	RegionIndex        int     `json:"regionIndex"`
	Owner              int     `json:"owner"`
	Health             int64   `json:"health"`
	RegenPerSecond     float64 `json:"regerPerSecond"` // (sic) upstream spelling
	AvailabilityFactor float64 `json:"availabilityFactor"`
	IsAvailable        bool    `json:"isAvailable"`
	Players            int     `json:"players"`
}

// ============================================================================
// War info (locale independent)
// ============================================================================
// Endpoint: GET /api/WarSeason/{warId}/WarInfo

// WarInfo is the static topology of the current war.
type WarInfo struct {
	WarID         int                `json:"warId"`
	StartDate     int64              `json:"startDate"` // unix seconds
	EndDate       int64              `json:"endDate"`
	LayoutVersion int                `json:"layoutVersion"`
	PlanetInfos   []PlanetInfo       `json:"planetInfos"`
	HomeWorlds    []HomeWorld        `json:"homeWorlds"`
	PlanetRegions []PlanetRegionInfo `json:"planetRegions"`
}

// PlanetInfo is the static metadata of one planet.
type PlanetInfo struct {
	Index        int      `json:"index"`
	SettingsHash uint32   `json:"settingsHash"`
	Position     Position `json:"position"`
	Waypoints    []int    `json:"waypoints"`
	Sector       int      `json:"sector"`
	MaxHealth    int64    `json:"maxHealth"`
	Disabled     bool     `json:"disabled"`
	InitialOwner int      `json:"initialOwner"`
}

// HomeWorld lists the capital planets of a faction.
type HomeWorld struct {
	Race          int   `json:"race"`
	PlanetIndices []int `json:"planetIndices"`
}

// PlanetRegionInfo is the static metadata of a planet region.
type PlanetRegionInfo struct {
	PlanetIndex  int    `json:"planetIndex"`
	RegionIndex  int    `json:"regionIndex"`
	SettingsHash uint32 `json:"settingsHash"`
	MaxHealth    int64  `json:"maxHealth"`
	RegionSize   int    `json:"regionSize"`
}
