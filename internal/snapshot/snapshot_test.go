// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"encoding/json"
	"testing"
)

func TestParseCatalogue(t *testing.T) {
	data := []byte(`
planets:
  0: {en-US: Super Earth, fr-FR: Super-Terre}
sectors:
  0: {en-US: Sol}
regions:
  3528713467: {en-US: Liberty City}
effects:
  71: Orbital Blockade
`)
	cat, err := ParseCatalogue(data)
	if err != nil {
		t.Fatalf("ParseCatalogue() error = %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"planet canonical", cat.PlanetName(0, "en-US", "en-US"), "Super Earth"},
		{"planet localized", cat.PlanetName(0, "fr-FR", "en-US"), "Super-Terre"},
		{"planet locale fallback", cat.PlanetName(0, "de-DE", "en-US"), "Super Earth"},
		{"planet missing", cat.PlanetName(9, "en-US", "en-US"), "Planet #9"},
		{"sector", cat.SectorName(0, "en-US", "en-US"), "Sol"},
		{"sector missing", cat.SectorName(3, "en-US", "en-US"), "Sector #3"},
		{"region", cat.RegionName(3528713467, "en-US", "en-US"), "Liberty City"},
		{"region missing", cat.RegionName(1, "en-US", "en-US"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if name, ok := cat.EffectName(71); !ok || name != "Orbital Blockade" {
		t.Errorf("EffectName(71) = %q, %v", name, ok)
	}
	if _, ok := cat.EffectName(72); ok {
		t.Error("EffectName(72) reported known")
	}
}

func TestLoadCatalogue_EmptyPath(t *testing.T) {
	cat, err := LoadCatalogue("")
	if err != nil {
		t.Fatalf("LoadCatalogue() error = %v", err)
	}
	if got := cat.PlanetName(1, "en-US", "en-US"); got != "Planet #1" {
		t.Errorf("PlanetName() = %q", got)
	}
}

func TestFactionText(t *testing.T) {
	for _, f := range []Faction{FactionUnknown, Humans, Terminids, Automaton, Illuminate, Faction(9)} {
		b, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("Marshal(%d) error = %v", f, err)
		}
		var got Faction
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", b, err)
		}
		if got != f {
			t.Errorf("round trip %d -> %s -> %d", f, b, got)
		}
	}
}

func TestMajorOrderComplete(t *testing.T) {
	done := Task{Target: 10, Progress: 10}
	open := Task{Target: 10, Progress: 4}

	tests := []struct {
		name  string
		flags int
		tasks []Task
		want  bool
	}{
		{"all tasks, all done", FlagsAllTasks, []Task{done, done}, true},
		{"all tasks, one open", FlagsAllTasksAlt, []Task{done, open}, false},
		{"any task, one done", FlagsAnyTask, []Task{open, done}, true},
		{"any task, none done", FlagsAnyTaskAlt, []Task{open, open}, false},
		{"no tasks", FlagsAllTasks, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mo := &MajorOrder{Flags: tt.flags, Tasks: tt.tasks}
			if got := mo.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegionBonusAndPlanetLiberation(t *testing.T) {
	r := Region{MaxHealth: 100000, Health: 25000, Owner: Automaton}
	if got := r.Progress(); got != 0.75 {
		t.Errorf("Region.Progress() = %v, want 0.75", got)
	}
	if got := r.Bonus(1000000); got != 0.15 {
		t.Errorf("Region.Bonus() = %v, want 0.15", got)
	}

	p := &Planet{MaxHealth: 1000, Health: 250}
	if got := p.Liberation(); got != 0.75 {
		t.Errorf("Liberation() = %v, want 0.75", got)
	}
	p.Event = &Event{Health: 900, MaxHealth: 1000}
	if got := p.Liberation(); got < 0.0999 || got > 0.1001 {
		t.Errorf("Liberation() with event = %v, want 0.1", got)
	}
}
