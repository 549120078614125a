// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"math"
	"time"
)

// Position in normalized galaxy space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stats are the historical counters of a planet.
type Stats struct {
	MissionsWon        int64 `json:"missions_won"`
	MissionsLost       int64 `json:"missions_lost"`
	MissionSuccessRate int64 `json:"mission_success_rate"`
	Kills              int64 `json:"kills"`
	Deaths             int64 `json:"deaths"`
	TimePlayed         int64 `json:"time_played"`
}

// Planet is one planet of the galaxy as of this snapshot.
type Planet struct {
	Index        int               `json:"index"`
	Name         string            `json:"name"`
	Names        map[string]string `json:"names,omitempty"` // locale -> name
	Sector       string            `json:"sector"`
	SectorID     int               `json:"sector_id"`
	SettingsHash uint32            `json:"settings_hash"`
	Position     Position          `json:"position"`

	MaxHealth      int64   `json:"max_health"`
	Health         int64   `json:"health"`
	RegenPerSecond float64 `json:"regen_per_second"`
	Owner          Faction `json:"owner"`
	InitialOwner   Faction `json:"initial_owner"`
	Players        int     `json:"players"`
	HomeWorldOf    Faction `json:"home_world_of,omitempty"`
	Disabled       bool    `json:"disabled,omitempty"`

	Effects       []uint32 `json:"effects,omitempty"` // keys into Snapshot.Effects
	Event         *Event   `json:"event,omitempty"`
	Regions       []Region `json:"regions,omitempty"`
	AttackTargets []int    `json:"attack_targets,omitempty"`
	Attackers     []int    `json:"attackers,omitempty"`
	Stats         *Stats   `json:"stats,omitempty"`

	DSSInOrbit   bool `json:"dss_in_orbit"`
	InAssignment bool `json:"in_assignment"`

	// GambitPlanet is the index of an attacking campaign's planet whose
	// liberation may end this planet's defense early.
	GambitPlanet *int `json:"gambit_planet,omitempty"`
}

// HealthPerc is current over max health, 0 when max health is unknown.
func (p *Planet) HealthPerc() float64 {
	if p.MaxHealth <= 0 {
		return 0
	}
	return float64(p.Health) / float64(p.MaxHealth)
}

// RegenPerHour is the enemy regeneration as a fraction of max health per hour.
func (p *Planet) RegenPerHour() float64 {
	if p.MaxHealth <= 0 {
		return 0
	}
	return p.RegenPerSecond * 3600 / float64(p.MaxHealth)
}

// RegenPercPerHour is RegenPerHour as a percentage rounded to two decimals.
// Threshold comparisons use it so 3.00% compares equal to a 0.03 limit.
func (p *Planet) RegenPercPerHour() float64 {
	return roundPerc(p.RegenPerHour() * 100)
}

func roundPerc(v float64) float64 {
	return math.Round(v*100) / 100
}

// Liberation is the campaign progress of the planet in [0,1]: the defense
// event progress when one is active, else 1 - HealthPerc.
func (p *Planet) Liberation() float64 {
	if p.Event != nil {
		return p.Event.Progress()
	}
	if p.MaxHealth <= 0 {
		return 0
	}
	return 1 - p.HealthPerc()
}

// Region returns the region with the given settings hash.
func (p *Planet) Region(hash uint32) (Region, bool) {
	for _, r := range p.Regions {
		if r.SettingsHash == hash {
			return r, true
		}
	}
	return Region{}, false
}

// Event types reported upstream.
const (
	EventTypeDefense = 1
)

// Event is the defense or invasion sub-state of a planet.
type Event struct {
	ID                int       `json:"id"`
	Type              int       `json:"type"`
	Faction           Faction   `json:"faction"`
	Health            int64     `json:"health"`
	MaxHealth         int64     `json:"max_health"`
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	CampaignID        int       `json:"campaign_id"`
	JointOperationIDs []int     `json:"joint_operation_ids,omitempty"`
}

// Progress is 1 - health/max, 0 when max is unknown.
func (e *Event) Progress() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return 1 - float64(e.Health)/float64(e.MaxHealth)
}

// RegionSize is the size tier of a region.
type RegionSize int

const (
	Settlement RegionSize = 1
	Town       RegionSize = 2
	City       RegionSize = 3
	MegaCity   RegionSize = 4
)

func (s RegionSize) String() string {
	switch s {
	case Settlement:
		return "settlement"
	case Town:
		return "town"
	case City:
		return "city"
	case MegaCity:
		return "megacity"
	default:
		return "unknown"
	}
}

// RegionBonusFactor scales a liberated region's max health into the health
// boost it grants its planet.
const RegionBonusFactor = 1.5

// Region is a sub-division of a large planet. PlanetIndex refers to the
// parent planet.
type Region struct {
	PlanetIndex        int        `json:"planet_index"`
	Index              int        `json:"index"`
	SettingsHash       uint32     `json:"settings_hash"`
	Name               string     `json:"name,omitempty"`
	Owner              Faction    `json:"owner"`
	Health             int64      `json:"health"`
	MaxHealth          int64      `json:"max_health"`
	RegenPerSecond     float64    `json:"regen_per_second"`
	AvailabilityFactor float64    `json:"availability_factor"`
	IsAvailable        bool       `json:"is_available"`
	Players            int        `json:"players"`
	Size               RegionSize `json:"size"`
	InAssignment       bool       `json:"in_assignment"`
}

// Liberated reports whether Humans hold the region.
func (r Region) Liberated() bool { return r.Owner == Humans }

// Progress is the liberation fraction of the region.
func (r Region) Progress() float64 {
	if r.Liberated() {
		return 1
	}
	if r.MaxHealth <= 0 {
		return 0
	}
	return 1 - float64(r.Health)/float64(r.MaxHealth)
}

// Bonus is the fraction of parentMax the planet gains when this region is
// liberated.
func (r Region) Bonus(parentMax int64) float64 {
	if parentMax <= 0 {
		return 0
	}
	return float64(r.MaxHealth) * RegionBonusFactor / float64(parentMax)
}

// Campaign is an active contest over a planet. IDs are recycled upstream;
// correlate by PlanetIndex.
type Campaign struct {
	ID          int     `json:"id"`
	PlanetIndex int     `json:"planet_index"`
	Type        int     `json:"type"`
	Count       int     `json:"count"`
	Defense     bool    `json:"defense"`
	Faction     Faction `json:"faction"`
	Progress    float64 `json:"progress"`
}
