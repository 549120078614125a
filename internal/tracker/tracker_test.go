// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package tracker

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomtom215/warmonitor/internal/models"
	"github.com/tomtom215/warmonitor/internal/snapshot"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func checkNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (+/- %v)", name, got, want, tol)
	}
}

func checkTimeNear(t *testing.T, name string, got, want time.Time) {
	t.Helper()
	if d := got.Sub(want); d < -time.Second || d > time.Second {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// setRate installs an entry whose rate is exactly ratePerHour.
func setRate[K comparable](f *family[K], key K, value, ratePerHour float64) {
	e := newEntry(1, time.Hour, value, 1, testNow)
	e.push(ratePerHour)
	f.entries[key] = e
}

func TestBootstrapBounds(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
	}{
		{"positive", 0.2},
		{"negative", -0.2},
		{"large", 5000},
		{"tiny", 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFamily[int]("test", Config{Window: 15, BootstrapSpread: 1.1, Interval: time.Minute}, rand.New(rand.NewPCG(1, 2)))
			f.observe(1, 0, 100, testNow)
			f.observe(1, tt.delta, 100, testNow.Add(time.Minute))

			e, _ := f.get(1)
			samples := e.Samples()
			if len(samples) != 15 {
				t.Fatalf("len(samples) = %d, want 15", len(samples))
			}
			lo := math.Min(tt.delta/1.1, tt.delta*1.1)
			hi := math.Max(tt.delta/1.1, tt.delta*1.1)
			for i, s := range samples {
				if s < lo || s > hi {
					t.Errorf("sample %d = %v outside [%v, %v]", i, s, lo, hi)
				}
			}

			rate, ok := e.ChangeRatePerHour()
			if !ok {
				t.Fatal("ChangeRatePerHour() reported no data")
			}
			if math.Signbit(rate) != math.Signbit(tt.delta) {
				t.Errorf("rate %v has different sign from delta %v", rate, tt.delta)
			}
		})
	}
}

func TestWindowEviction(t *testing.T) {
	const n = 5
	f := newFamily[int]("test", Config{Window: n, BootstrapSpread: 1.1, Interval: time.Minute}, rand.New(rand.NewPCG(1, 2)))

	value := 0.0
	f.observe(7, value, 1000, testNow)
	value += 1
	f.observe(7, value, 1000, testNow) // seeds the window

	for i := 1; i <= n+5; i++ {
		value += float64(i)
		f.observe(7, value, 1000, testNow)
	}

	e, _ := f.get(7)
	samples := e.Samples()
	want := []float64{6, 7, 8, 9, 10}
	if len(samples) != n {
		t.Fatalf("len(samples) = %d, want %d", len(samples), n)
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("samples = %v, want %v", samples, want)
		}
	}

	rate, _ := e.ChangeRatePerHour()
	checkNear(t, "rate", rate, 8*60, 1e-9)
}

func TestEntryNoData(t *testing.T) {
	var e Entry
	if _, ok := e.ChangeRatePerHour(); ok {
		t.Error("empty entry reported a rate")
	}
	if _, ok := e.CompleteTime(testNow); ok {
		t.Error("empty entry reported a completion time")
	}

	tests := []struct {
		name  string
		delta float64
		value float64
		want  bool
	}{
		{"positive rate", 0.01, 0.2, true},
		{"zero rate", 0, 0.2, false},
		{"negative rate", -0.01, 0.2, false},
		{"already complete", 0.01, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEntry(1, time.Minute, tt.value, 1, testNow)
			e.push(tt.delta)
			end, ok := e.CompleteTime(testNow)
			if ok != tt.want {
				t.Fatalf("CompleteTime() ok = %v, want %v", ok, tt.want)
			}
			if ok {
				// 0.8 remaining at 0.6 per hour
				checkTimeNear(t, "end", end, testNow.Add(80*time.Minute))
			}
		})
	}
}

func e2eBundle(health int64, at time.Time) *models.RawBundle {
	return &models.RawBundle{
		Canonical: "en-US",
		Locales: map[string]*models.LocalePayload{"en-US": {Status: &models.WarStatus{
			Time:         3600,
			PlanetStatus: []models.PlanetStatus{{Index: 1, Owner: 3, Health: health, Players: 100}},
			Campaigns:    []models.Campaign{{ID: 5, PlanetIndex: 1}},
		}}},
		WarInfo:   &models.WarInfo{PlanetInfos: []models.PlanetInfo{{Index: 1, MaxHealth: 100}}},
		FetchedAt: at,
	}
}

func TestEndToEndLiberationRate(t *testing.T) {
	b := snapshot.NewBuilder(nil, snapshot.DefaultGambitMaxRegen)
	tr := New(Config{Seed: 42})

	first, err := b.Build(e2eBundle(80, testNow), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	p, _ := first.Planet(1)
	if p.HealthPerc() != 0.8 || p.Owner != snapshot.Automaton {
		t.Fatalf("planet = %v %v, want 0.8 automaton", p.HealthPerc(), p.Owner)
	}
	tr.Update(first)
	if e, ok := tr.Liberation(1); !ok || len(e.Samples()) != 0 {
		t.Fatalf("after first snapshot entry = %+v, %v; want value only", e, ok)
	}

	second, err := b.Build(e2eBundle(60, testNow.Add(time.Minute)), first)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	tr.Update(second)

	e, ok := tr.Liberation(1)
	if !ok {
		t.Fatal("no liberation entry for planet 1")
	}
	rate, ok := e.ChangeRatePerHour()
	if !ok || rate <= 0 {
		t.Fatalf("rate = %v, %v; want positive", rate, ok)
	}
	end, ok := e.CompleteTime(testNow)
	if !ok || end.Before(testNow) {
		t.Errorf("CompleteTime() = %v, %v; want finite future time", end, ok)
	}

	tr.ClearLiberation(1)
	if _, ok := tr.Liberation(1); ok {
		t.Error("entry still present after ClearLiberation")
	}
}

func TestLiberationIsCampaignScoped(t *testing.T) {
	b := snapshot.NewBuilder(nil, snapshot.DefaultGambitMaxRegen)
	tr := New(Config{Seed: 1})

	for i, health := range []int64{80, 60} {
		raw := e2eBundle(health, testNow.Add(time.Duration(i)*time.Minute))
		raw.Locales["en-US"].Status.Campaigns = nil
		snap, err := b.Build(raw, nil)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		tr.Update(snap)
	}

	if e, ok := tr.Liberation(1); ok {
		t.Errorf("liberation tracked without a campaign: %+v", e)
	}
}

func TestUpdatePrunesAbsentKeys(t *testing.T) {
	tr := New(Config{Seed: 1})
	snap := &snapshot.Snapshot{
		FetchedAt: testNow,
		MajorOrders: []snapshot.MajorOrder{{ID: 9, Tasks: []snapshot.Task{{Target: 10, Progress: 1}}}},
		DSS: &snapshot.DSS{TacticalActions: []snapshot.TacticalAction{{
			ID:    3,
			Costs: []snapshot.Cost{{ItemMixID: 4, Target: 100, Current: 10}},
		}}},
	}
	tr.Update(snap)

	if _, ok := tr.Task(TaskKey{AssignmentID: 9, Index: 0}); !ok {
		t.Fatal("task not tracked")
	}
	if _, ok := tr.Cost(CostKey{ActionID: 3, ItemMixID: 4}); !ok {
		t.Fatal("cost not tracked")
	}

	tr.Update(&snapshot.Snapshot{FetchedAt: testNow.Add(time.Minute)})
	if _, ok := tr.Task(TaskKey{AssignmentID: 9, Index: 0}); ok {
		t.Error("task kept after assignment disappeared")
	}
	if _, ok := tr.Cost(CostKey{ActionID: 3, ItemMixID: 4}); ok {
		t.Error("cost kept after station disappeared")
	}
}

func endTimeSnapshot() *snapshot.Snapshot {
	attacker := 2
	return &snapshot.Snapshot{
		FetchedAt: testNow,
		Planets: map[int]*snapshot.Planet{
			1: {
				Index: 1, MaxHealth: 1000000, Health: 500000, Owner: snapshot.Automaton,
				Regions: []snapshot.Region{
					{PlanetIndex: 1, Index: 0, SettingsHash: 11, MaxHealth: 100000, Health: 100000, Owner: snapshot.Automaton, IsAvailable: true},
					{PlanetIndex: 1, Index: 1, SettingsHash: 12, Owner: snapshot.Humans},
				},
			},
			2: {Index: 2, MaxHealth: 1000, Health: 500, Owner: snapshot.Terminids},
			3: {
				Index: 3, MaxHealth: 1000, Health: 1000, Owner: snapshot.Humans,
				Event:        &snapshot.Event{Health: 900, MaxHealth: 1000},
				GambitPlanet: &attacker,
			},
		},
	}
}

func TestEndTime(t *testing.T) {
	snap := endTimeSnapshot()

	t.Run("no rate data", func(t *testing.T) {
		tr := New(Config{Seed: 1})
		if _, ok := tr.EndTime(snap, 1, testNow); ok {
			t.Error("EndTime() reported a projection without data")
		}
	})

	t.Run("planet only", func(t *testing.T) {
		tr := New(Config{Seed: 1})
		setRate(tr.liberation, 2, 0.5, 0.25)
		proj, ok := tr.EndTime(snap, 2, testNow)
		if !ok {
			t.Fatal("EndTime() reported no projection")
		}
		if proj.Source != SourcePlanet {
			t.Errorf("Source = %q, want planet", proj.Source)
		}
		checkTimeNear(t, "End", proj.End, testNow.Add(2*time.Hour))
	})

	t.Run("region bonus", func(t *testing.T) {
		tr := New(Config{Seed: 1})
		setRate(tr.liberation, 1, 0.5, 0.1)
		setRate(tr.regions, uint32(11), 0, 0.5)
		proj, ok := tr.EndTime(snap, 1, testNow)
		if !ok {
			t.Fatal("EndTime() reported no projection")
		}
		if proj.Source != SourceRegions || len(proj.Regions) != 1 || proj.Regions[0] != 11 {
			t.Errorf("projection = %+v, want region 11 contributing", proj)
		}
		// region falls after 2h (progress 0.7 + 0.15 bonus), remainder 0.15 at 0.1/h
		checkTimeNear(t, "End", proj.End, testNow.Add(3*time.Hour+30*time.Minute))
	})

	t.Run("planet outpaces region", func(t *testing.T) {
		tr := New(Config{Seed: 1})
		setRate(tr.liberation, 1, 0.5, 1)
		setRate(tr.regions, uint32(11), 0, 0.1)
		proj, ok := tr.EndTime(snap, 1, testNow)
		if !ok {
			t.Fatal("EndTime() reported no projection")
		}
		if proj.Source != SourcePlanet {
			t.Errorf("Source = %q, want planet", proj.Source)
		}
		checkTimeNear(t, "End", proj.End, testNow.Add(30*time.Minute))
	})

	t.Run("gambit", func(t *testing.T) {
		tr := New(Config{Seed: 1})
		setRate(tr.liberation, 2, 0.5, 0.25)
		proj, ok := tr.EndTime(snap, 3, testNow)
		if !ok {
			t.Fatal("EndTime() reported no projection")
		}
		if proj.Source != SourceGambit || proj.GambitPlanet == nil || *proj.GambitPlanet != 2 {
			t.Errorf("projection = %+v, want gambit via planet 2", proj)
		}
		checkTimeNear(t, "End", proj.End, testNow.Add(2*time.Hour))
	})
}
