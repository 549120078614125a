// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package tracker

import (
	"sort"
	"time"

	"github.com/tomtom215/warmonitor/internal/snapshot"
)

// Projection sources.
const (
	SourcePlanet  = "planet"
	SourceRegions = "regions"
	SourceGambit  = "gambit"
)

// Projection is a projected liberation (or defense) completion time.
type Projection struct {
	PlanetIndex int       `json:"planet_index"`
	End         time.Time `json:"end"`
	Source      string    `json:"source"`
	// Regions lists the settings hashes of regions whose liberation bonus
	// contributes to the projection, in walk order.
	Regions []uint32 `json:"regions,omitempty"`
	// GambitPlanet is set when the projection comes from the linked
	// attacking campaign's planet.
	GambitPlanet *int `json:"gambit_planet,omitempty"`
}

// EndTime projects when a planet's campaign completes. Regions are walked in
// ascending availability order; each liberated region adds its bonus to the
// planet's progress. A gambit-linked attacker that completes earlier wins.
// It reports false when there is no rate data for the planet.
func (t *Tracker) EndTime(snap *snapshot.Snapshot, planet int, now time.Time) (Projection, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	proj, ok := t.endTime(snap, planet, now)

	p, found := snap.Planet(planet)
	if !found || p.GambitPlanet == nil {
		return proj, ok
	}
	gambit, gok := t.endTime(snap, *p.GambitPlanet, now)
	if gok && (!ok || gambit.End.Before(proj.End)) {
		src := *p.GambitPlanet
		return Projection{
			PlanetIndex:  planet,
			End:          gambit.End,
			Source:       SourceGambit,
			Regions:      gambit.Regions,
			GambitPlanet: &src,
		}, true
	}
	return proj, ok
}

// endTime is EndTime without gambit resolution. Callers hold t.mu.
func (t *Tracker) endTime(snap *snapshot.Snapshot, planet int, now time.Time) (Projection, bool) {
	p, ok := snap.Planet(planet)
	if !ok {
		return Projection{}, false
	}

	var planetRate float64
	if e, ok := t.liberation.get(planet); ok {
		planetRate, _ = e.ChangeRatePerHour()
	}

	pending := make([]snapshot.Region, 0, len(p.Regions))
	for _, r := range p.Regions {
		if !r.Liberated() {
			pending = append(pending, r)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].AvailabilityFactor < pending[j].AvailabilityFactor
	})
	rates := t.regionRates(pending)

	proj := Projection{PlanetIndex: planet, Source: SourcePlanet}
	progress := p.Liberation()
	var elapsed float64 // hours from now

	for i, r := range pending {
		rRate := rates[i]
		if rRate <= 0 {
			break
		}

		// time until the region opens, then until it falls
		var wait float64
		if !r.IsAvailable && progress < r.AvailabilityFactor {
			if planetRate <= 0 {
				break
			}
			wait = (r.AvailabilityFactor - progress) / planetRate
		}
		tRegion := wait + (1-r.Progress())/rRate

		if planetRate > 0 {
			if tPlanet := (1 - progress) / planetRate; tPlanet <= tRegion {
				return finish(proj, now, elapsed+tPlanet)
			}
		}

		elapsed += tRegion
		progress += planetRate*tRegion + r.Bonus(p.MaxHealth)
		proj.Regions = append(proj.Regions, r.SettingsHash)
		proj.Source = SourceRegions
		if progress >= 1 {
			return finish(proj, now, elapsed)
		}
	}

	if planetRate <= 0 {
		return Projection{}, false
	}
	return finish(proj, now, elapsed+(1-progress)/planetRate)
}

func finish(proj Projection, now time.Time, hours float64) (Projection, bool) {
	end, ok := addHours(now, hours)
	if !ok {
		return Projection{}, false
	}
	proj.End = end
	return proj, true
}

// regionRates returns the per-hour progress rate of each region. A region
// without its own trend uses the mean health-per-hour of the trending regions
// normalized by its own max health.
func (t *Tracker) regionRates(regions []snapshot.Region) []float64 {
	rates := make([]float64, len(regions))
	var hpSum float64
	var hpN int
	for i, r := range regions {
		e, ok := t.regions.get(r.SettingsHash)
		if !ok {
			continue
		}
		if rate, ok := e.ChangeRatePerHour(); ok && rate > 0 {
			rates[i] = rate
			hpSum += rate * float64(r.MaxHealth)
			hpN++
		}
	}
	if hpN == 0 {
		return rates
	}
	avgHP := hpSum / float64(hpN)
	for i, r := range regions {
		if rates[i] == 0 && r.MaxHealth > 0 {
			rates[i] = avgHP / float64(r.MaxHealth)
		}
	}
	return rates
}
