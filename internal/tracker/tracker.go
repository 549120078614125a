// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package tracker

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/tomtom215/warmonitor/internal/snapshot"
)

// Default heuristics. These are tunable game-balance assumptions.
const (
	DefaultWindow          = 15
	DefaultBootstrapSpread = 1.1
	DefaultInterval        = time.Minute
)

// Family names, used as metric labels.
const (
	FamilyLiberation = "liberation"
	FamilyRegions    = "regions"
	FamilyTasks      = "tasks"
	FamilyCosts      = "costs"
)

// TaskKey identifies one task of one assignment.
type TaskKey struct {
	AssignmentID int64
	Index        int
}

// CostKey identifies one resource requirement of a tactical action.
type CostKey struct {
	ActionID  uint32
	ItemMixID uint32
}

// Config configures a Tracker.
type Config struct {
	// Window is the number of samples kept per key.
	Window int
	// BootstrapSpread bounds the seeded samples to [d/spread, d*spread].
	BootstrapSpread float64
	// Interval is the nominal poll interval used to scale rates to an hour.
	Interval time.Duration
	// Seed makes bootstrap sampling deterministic. Zero picks a random seed.
	Seed uint64
}

func (c Config) withDefaults() Config {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.BootstrapSpread < 1 {
		c.BootstrapSpread = DefaultBootstrapSpread
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	return c
}

// Tracker holds the four tracked families.
type Tracker struct {
	mu         sync.RWMutex
	liberation *family[int]
	regions    *family[uint32]
	tasks      *family[TaskKey]
	costs      *family[CostKey]
}

// New creates an empty tracker.
func New(cfg Config) *Tracker {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Tracker{
		liberation: newFamily[int](FamilyLiberation, cfg, rng),
		regions:    newFamily[uint32](FamilyRegions, cfg, rng),
		tasks:      newFamily[TaskKey](FamilyTasks, cfg, rng),
		costs:      newFamily[CostKey](FamilyCosts, cfg, rng),
	}
}

// Update observes every tracked quantity in snap. Liberation and regions are
// observed only on planets with a campaign. Region, task and cost keys absent
// from snap are dropped; liberation entries are cleared by the differ when a
// campaign ends.
func (t *Tracker) Update(snap *snapshot.Snapshot) {
	if snap == nil {
		return
	}
	at := snap.FetchedAt

	t.mu.Lock()
	defer t.mu.Unlock()

	regions := make(map[uint32]struct{})
	for _, c := range snap.Campaigns {
		p, ok := snap.Planet(c.PlanetIndex)
		if !ok {
			continue
		}
		t.liberation.observe(p.Index, p.Liberation(), 1, at)
		for _, r := range p.Regions {
			if r.Liberated() || r.SettingsHash == 0 {
				continue
			}
			t.regions.observe(r.SettingsHash, r.Progress(), 1, at)
			regions[r.SettingsHash] = struct{}{}
		}
	}
	t.regions.retain(regions)

	tasks := make(map[TaskKey]struct{})
	for _, mo := range snap.MajorOrders {
		for i, task := range mo.Tasks {
			key := TaskKey{AssignmentID: mo.ID, Index: i}
			t.tasks.observe(key, float64(task.Progress), float64(task.Target), at)
			tasks[key] = struct{}{}
		}
	}
	t.tasks.retain(tasks)

	costs := make(map[CostKey]struct{})
	if snap.DSS != nil {
		for _, ta := range snap.DSS.TacticalActions {
			for _, c := range ta.Costs {
				key := CostKey{ActionID: ta.ID, ItemMixID: c.ItemMixID}
				t.costs.observe(key, c.Current, c.Target, at)
				costs[key] = struct{}{}
			}
		}
	}
	t.costs.retain(costs)

	t.recordSizes()
}

func (t *Tracker) recordSizes() {
	t.liberation.recordSize()
	t.regions.recordSize()
	t.tasks.recordSize()
	t.costs.recordSize()
}

// Liberation returns the liberation entry of a planet.
func (t *Tracker) Liberation(planet int) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.liberation.get(planet)
}

// Region returns the entry of a region by settings hash.
func (t *Tracker) Region(hash uint32) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.regions.get(hash)
}

// Task returns the entry of a major order task.
func (t *Tracker) Task(key TaskKey) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tasks.get(key)
}

// Cost returns the entry of a tactical action cost.
func (t *Tracker) Cost(key CostKey) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.costs.get(key)
}

// ClearLiberation drops the liberation history of a planet.
func (t *Tracker) ClearLiberation(planet int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.liberation.remove(planet)
	t.liberation.recordSize()
}
