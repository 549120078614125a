// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"sort"
	"strings"
	"time"
)

// Dispatch is one entry of the in-game news feed. IDs increase monotonically.
type Dispatch struct {
	ID        int64             `json:"id"`
	Published time.Time         `json:"published"`
	Type      int               `json:"type"`
	Message   string            `json:"message"`
	Localized map[string]string `json:"localized,omitempty"`
}

// Title is the first line of the message.
func (d Dispatch) Title() string {
	title, _, _ := strings.Cut(strings.TrimSpace(d.Message), "\n")
	return strings.TrimSpace(title)
}

// Body is everything after the first line.
func (d Dispatch) Body() string {
	_, body, _ := strings.Cut(strings.TrimSpace(d.Message), "\n")
	return strings.TrimSpace(body)
}

// EventText is the localized narrative of a global event.
type EventText struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// GlobalEvent is a galaxy-wide announcement. IDs increase monotonically.
// An empty title and message marks an effect-only event.
type GlobalEvent struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Message       string               `json:"message"`
	Localized     map[string]EventText `json:"localized,omitempty"`
	Faction       Faction              `json:"faction"`
	AssignmentID  int64                `json:"assignment_id"`
	Effects       []uint32             `json:"effects,omitempty"`
	PlanetIndices []int                `json:"planet_indices,omitempty"` // empty means all planets
	Expiry        time.Time            `json:"expiry"`
}

// SteamNews is a Steam announcement (patch notes).
type SteamNews struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Author    string    `json:"author,omitempty"`
	Contents  string    `json:"contents"`
	Published time.Time `json:"published"`
}

// Snapshot is the immutable war state of one poll cycle.
type Snapshot struct {
	WarID    int       `json:"war_id"`
	WarStart time.Time `json:"war_start"`
	WarTime  int64     `json:"war_time"` // seconds since war start

	Planets       map[int]*Planet               `json:"planets"`
	Campaigns     []Campaign                    `json:"campaigns"`
	MajorOrders   []MajorOrder                  `json:"major_orders"`
	Dispatches    []Dispatch                    `json:"dispatches"`
	GlobalEvents  []GlobalEvent                 `json:"global_events"`
	DSS           *DSS                          `json:"dss,omitempty"`
	Effects       map[uint32]*GalacticWarEffect `json:"effects"`
	PersonalOrder *MajorOrder                   `json:"personal_order,omitempty"`
	PatchNotes    []SteamNews                   `json:"patch_notes,omitempty"`
	GalaxyStats   *Stats                        `json:"galaxy_stats,omitempty"`

	TotalPlayers int  `json:"total_players"`
	SteamPlayers *int `json:"steam_players,omitempty"`

	Locales   []string  `json:"locales"`
	FetchedAt time.Time `json:"fetched_at"`
	BuiltAt   time.Time `json:"built_at"`
}

// Planet resolves a planet by index.
func (s *Snapshot) Planet(index int) (*Planet, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.Planets[index]
	return p, ok
}

// Effect resolves a galactic war effect by id.
func (s *Snapshot) Effect(id uint32) (*GalacticWarEffect, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.Effects[id]
	return e, ok
}

// CampaignOn returns the campaign on the given planet.
func (s *Snapshot) CampaignOn(planet int) (Campaign, bool) {
	if s == nil {
		return Campaign{}, false
	}
	for _, c := range s.Campaigns {
		if c.PlanetIndex == planet {
			return c, true
		}
	}
	return Campaign{}, false
}

// WarTimeToAbs converts war-relative seconds to an absolute time.
func (s *Snapshot) WarTimeToAbs(seconds int64) time.Time {
	return s.WarStart.Add(time.Duration(seconds) * time.Second)
}

// PlanetIndices returns the planet indices in ascending order.
func (s *Snapshot) PlanetIndices() []int {
	out := make([]int, 0, len(s.Planets))
	for idx := range s.Planets {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Age is the time since the snapshot was built.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.BuiltAt)
}
