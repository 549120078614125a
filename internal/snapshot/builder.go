// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/warmonitor/internal/logging"
	"github.com/tomtom215/warmonitor/internal/models"
)

var (
	// ErrNoWarStatus means the canonical locale's war status is absent.
	ErrNoWarStatus = errors.New("snapshot: canonical war status missing")

	// ErrNoPlanets means the war status carried no planets.
	ErrNoPlanets = errors.New("snapshot: no planets in war status")
)

// DefaultGambitMaxRegen is the highest enemy regeneration (fraction of max
// health per hour) an attacking campaign's planet may have to be considered
// for a gambit link. Tunable heuristic.
const DefaultGambitMaxRegen = 0.03

// Builder converts raw bundles into snapshots. It holds no per-cycle state.
type Builder struct {
	catalogue      *Catalogue
	gambitMaxRegen float64
	now            func() time.Time
}

// NewBuilder creates a builder using cat for display names.
func NewBuilder(cat *Catalogue, gambitMaxRegen float64) *Builder {
	if cat == nil {
		cat = &Catalogue{}
	}
	return &Builder{
		catalogue:      cat,
		gambitMaxRegen: gambitMaxRegen,
		now:            time.Now,
	}
}

// WithClock overrides the clock used for build timestamps. Intended for tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// build carries the state of a single Build call.
type build struct {
	*Builder
	raw      *models.RawBundle
	previous *Snapshot
	status   *models.WarStatus
	canon    string
	at       time.Time
	snap     *Snapshot
	log      zerolog.Logger

	// unknown discriminators already logged during this build
	unknown map[string]bool
}

// Build produces a snapshot from raw. previous, when non-nil, supplies static
// metadata for sections that failed to fetch this cycle.
func (b *Builder) Build(raw *models.RawBundle, previous *Snapshot) (*Snapshot, error) {
	canon := raw.CanonicalPayload()
	if canon == nil {
		return nil, ErrNoWarStatus
	}
	if len(canon.Status.PlanetStatus) == 0 {
		return nil, ErrNoPlanets
	}

	now := raw.FetchedAt
	if now.IsZero() {
		now = b.now()
	}

	bs := &build{
		Builder:  b,
		raw:      raw,
		previous: previous,
		status:   canon.Status,
		canon:    raw.Canonical,
		at:       now,
		log:      logging.With().Str("component", "snapshot").Logger(),
		unknown:  make(map[string]bool),
	}
	bs.snap = &Snapshot{
		WarID:     canon.Status.WarID,
		WarTime:   canon.Status.Time,
		WarStart:  now.Add(-time.Duration(canon.Status.Time) * time.Second),
		Locales:   bs.locales(),
		FetchedAt: now,
	}

	bs.buildPlanets()
	bs.buildEffects()
	bs.attachEffects()
	bs.attachRegions()
	bs.buildEvents()
	bs.buildCampaigns()
	bs.detectGambits()
	bs.buildMajorOrders()
	bs.buildDispatches()
	bs.buildGlobalEvents()
	bs.buildDSS()
	bs.buildPersonalOrder()
	bs.buildSteam()

	for _, p := range bs.snap.Planets {
		bs.snap.TotalPlayers += p.Players
	}
	bs.snap.BuiltAt = b.now()
	return bs.snap, nil
}

// locales lists locales with a war status, canonical first.
func (bs *build) locales() []string {
	out := make([]string, 0, len(bs.raw.Locales))
	for loc, p := range bs.raw.Locales {
		if p != nil && p.Status != nil && loc != bs.canon {
			out = append(out, loc)
		}
	}
	sort.Strings(out)
	return append([]string{bs.canon}, out...)
}

func (bs *build) abs(warSeconds int64) time.Time {
	return bs.snap.WarTimeToAbs(warSeconds)
}

// logUnknown logs an unmodeled discriminator once per build.
func (bs *build) logUnknown(kind, value string) {
	key := kind + ":" + value
	if bs.unknown[key] {
		return
	}
	bs.unknown[key] = true
	bs.log.Warn().Str("kind", kind).Str("value", value).Msg("Unknown discriminator, using fallback")
}

// logMissingName logs a value the name catalogue has no entry for. Without a
// catalogue every effect type misses, so this stays at debug.
func (bs *build) logMissingName(kind, value string) {
	key := "name:" + kind + ":" + value
	if bs.unknown[key] {
		return
	}
	bs.unknown[key] = true
	bs.log.Debug().Str("kind", kind).Str("value", value).Msg("No catalogue name, using placeholder")
}

// Step 2: planets from static metadata merged with status.
func (bs *build) buildPlanets() {
	infos := make(map[int]models.PlanetInfo)
	if bs.raw.WarInfo != nil {
		for _, pi := range bs.raw.WarInfo.PlanetInfos {
			infos[pi.Index] = pi
		}
	} else if bs.previous == nil {
		bs.log.Warn().Msg("War info unavailable and no previous snapshot, planet max health unknown")
	}

	planets := make(map[int]*Planet, len(bs.status.PlanetStatus))
	for _, ps := range bs.status.PlanetStatus {
		p := &Planet{
			Index:          ps.Index,
			Health:         ps.Health,
			RegenPerSecond: ps.RegenPerSecond,
			Owner:          Faction(ps.Owner),
			Players:        ps.Players,
			Position:       Position{X: ps.Position.X, Y: ps.Position.Y},
		}
		if info, ok := infos[ps.Index]; ok {
			p.MaxHealth = info.MaxHealth
			p.SettingsHash = info.SettingsHash
			p.SectorID = info.Sector
			p.InitialOwner = Faction(info.InitialOwner)
			p.Disabled = info.Disabled
		} else if prev, ok := bs.previous.Planet(ps.Index); ok {
			p.MaxHealth = prev.MaxHealth
			p.SettingsHash = prev.SettingsHash
			p.SectorID = prev.SectorID
			p.InitialOwner = prev.InitialOwner
			p.Disabled = prev.Disabled
			p.HomeWorldOf = prev.HomeWorldOf
		}

		p.Names = make(map[string]string, len(bs.snap.Locales))
		for _, loc := range bs.snap.Locales {
			p.Names[loc] = bs.catalogue.PlanetName(p.Index, loc, bs.canon)
		}
		p.Name = p.Names[bs.canon]
		p.Sector = bs.catalogue.SectorName(p.SectorID, bs.canon, bs.canon)
		planets[p.Index] = p
	}

	if bs.raw.WarInfo != nil {
		for _, hw := range bs.raw.WarInfo.HomeWorlds {
			for _, idx := range hw.PlanetIndices {
				if p, ok := planets[idx]; ok {
					p.HomeWorldOf = Faction(hw.Race)
				}
			}
		}
	}

	if bs.raw.Summary != nil {
		for _, st := range bs.raw.Summary.PlanetsStats {
			if p, ok := planets[st.PlanetIndex]; ok {
				p.Stats = toStats(st)
			}
		}
		bs.snap.GalaxyStats = toStats(bs.raw.Summary.GalaxyStats)
	}

	for _, pa := range bs.status.PlanetAttacks {
		src, okSrc := planets[pa.Source]
		dst, okDst := planets[pa.Target]
		if !okSrc || !okDst {
			continue
		}
		src.AttackTargets = append(src.AttackTargets, pa.Target)
		dst.Attackers = append(dst.Attackers, pa.Source)
	}

	bs.snap.Planets = planets
}

func toStats(st models.PlanetStats) *Stats {
	return &Stats{
		MissionsWon:        st.MissionsWon,
		MissionsLost:       st.MissionsLost,
		MissionSuccessRate: st.MissionSuccessRate,
		Kills:              st.BugKills + st.AutomatonKills + st.IlluminateKills,
		Deaths:             st.Deaths,
		TimePlayed:         st.TimePlayed,
	}
}

// Step 3: galactic war effects.
func (bs *build) buildEffects() {
	if len(bs.raw.Effects) == 0 && bs.previous != nil && len(bs.previous.Effects) > 0 {
		bs.snap.Effects = bs.previous.Effects
		return
	}
	effects := make(map[uint32]*GalacticWarEffect, len(bs.raw.Effects))
	for _, re := range bs.raw.Effects {
		name, known := bs.catalogue.EffectName(re.EffectType)
		if !known {
			bs.logMissingName("effect_type", strconv.Itoa(re.EffectType))
		}
		effects[re.ID] = &GalacticWarEffect{
			ID:         re.ID,
			Type:       re.EffectType,
			Name:       name,
			Known:      known,
			GameplayID: re.GameplayEffectID,
			Values:     slotMap(re.ValueTypes, re.Values),
		}
	}
	bs.snap.Effects = effects
}

// slotMap zips parallel value-type / value arrays into a sparse map.
// Extra entries on either side are ignored.
func slotMap(types []int, values []int64) map[int]int64 {
	n := min(len(types), len(values))
	if n == 0 {
		return nil
	}
	out := make(map[int]int64, n)
	for i := 0; i < n; i++ {
		out[types[i]] = values[i]
	}
	return out
}

// resolveEffects keeps the ids present in the effect map, deduplicated and
// in first-seen order.
func (bs *build) resolveEffects(ids []uint32) []uint32 {
	var out []uint32
	seen := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := bs.snap.Effects[id]; !ok {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Step 4: active effects per planet.
func (bs *build) attachEffects() {
	perPlanet := make(map[int][]uint32)
	for _, ae := range bs.status.PlanetActiveEffects {
		perPlanet[ae.Index] = append(perPlanet[ae.Index], ae.GalacticEffectID)
	}
	for idx, ids := range perPlanet {
		if p, ok := bs.snap.Planets[idx]; ok {
			p.Effects = bs.resolveEffects(ids)
		}
	}
}

type regionKey struct{ planet, region int }

// Step 5: regions, static metadata merged with status.
func (bs *build) attachRegions() {
	infos := make(map[regionKey]models.PlanetRegionInfo)
	if bs.raw.WarInfo != nil {
		for _, ri := range bs.raw.WarInfo.PlanetRegions {
			infos[regionKey{ri.PlanetIndex, ri.RegionIndex}] = ri
		}
	}

	for _, rs := range bs.status.PlanetRegions {
		p, ok := bs.snap.Planets[rs.PlanetIndex]
		if !ok {
			continue
		}
		r := Region{
			PlanetIndex:        rs.PlanetIndex,
			Index:              rs.RegionIndex,
			Owner:              Faction(rs.Owner),
			Health:             rs.Health,
			RegenPerSecond:     rs.RegenPerSecond,
			AvailabilityFactor: rs.AvailabilityFactor,
			IsAvailable:        rs.IsAvailable,
			Players:            rs.Players,
		}
		if info, ok := infos[regionKey{rs.PlanetIndex, rs.RegionIndex}]; ok {
			r.SettingsHash = info.SettingsHash
			r.MaxHealth = info.MaxHealth
			r.Size = RegionSize(info.RegionSize)
		} else if prev, ok := bs.previous.Planet(rs.PlanetIndex); ok {
			for _, pr := range prev.Regions {
				if pr.Index == rs.RegionIndex {
					r.SettingsHash = pr.SettingsHash
					r.MaxHealth = pr.MaxHealth
					r.Size = pr.Size
				}
			}
		}
		r.Name = bs.catalogue.RegionName(r.SettingsHash, bs.canon, bs.canon)
		p.Regions = append(p.Regions, r)
	}

	for _, p := range bs.snap.Planets {
		sort.Slice(p.Regions, func(i, j int) bool { return p.Regions[i].Index < p.Regions[j].Index })
	}
}

// Step 6: defense events.
func (bs *build) buildEvents() {
	for _, pe := range bs.status.PlanetEvents {
		p, ok := bs.snap.Planets[pe.PlanetIndex]
		if !ok {
			continue
		}
		p.Event = &Event{
			ID:                pe.ID,
			Type:              pe.EventType,
			Faction:           Faction(pe.Race),
			Health:            pe.Health,
			MaxHealth:         pe.MaxHealth,
			Start:             bs.abs(pe.StartTime),
			End:               bs.abs(pe.ExpireTime),
			CampaignID:        pe.CampaignID,
			JointOperationIDs: pe.JointOperationIDs,
		}
	}
}

// Step 7: campaigns, sorted by planet player count descending.
func (bs *build) buildCampaigns() {
	campaigns := make([]Campaign, 0, len(bs.status.Campaigns))
	for _, rc := range bs.status.Campaigns {
		p, ok := bs.snap.Planets[rc.PlanetIndex]
		if !ok {
			bs.log.Warn().Int("campaign_id", rc.ID).Int("planet", rc.PlanetIndex).Msg("Campaign references unknown planet, dropped")
			continue
		}
		c := Campaign{
			ID:          rc.ID,
			PlanetIndex: rc.PlanetIndex,
			Type:        rc.Type,
			Count:       rc.Count,
			Defense:     p.Event != nil,
			Faction:     p.Owner,
			Progress:    p.Liberation(),
		}
		if p.Event != nil {
			c.Faction = p.Event.Faction
		}
		campaigns = append(campaigns, c)
	}

	planets := bs.snap.Planets
	sort.SliceStable(campaigns, func(i, j int) bool {
		pi, pj := planets[campaigns[i].PlanetIndex].Players, planets[campaigns[j].PlanetIndex].Players
		if pi != pj {
			return pi > pj
		}
		return campaigns[i].ID < campaigns[j].ID
	})
	bs.snap.Campaigns = campaigns
}

// Step 8: gambit detection. An attacked planet with a single attacker and an
// active defense event is linked to the attacking campaign's planet when that
// planet's enemy regeneration is at most gambitMaxRegen per hour, compared as
// percentages rounded to two decimals.
func (bs *build) detectGambits() {
	maxPerc := roundPerc(bs.gambitMaxRegen * 100)
	for _, c := range bs.snap.Campaigns {
		if c.Defense {
			continue
		}
		attacker := bs.snap.Planets[c.PlanetIndex]
		if len(attacker.AttackTargets) == 0 || attacker.RegenPercPerHour() > maxPerc {
			continue
		}
		for _, idx := range attacker.AttackTargets {
			target, ok := bs.snap.Planets[idx]
			if !ok || target.GambitPlanet != nil {
				continue
			}
			if len(target.Attackers) < 2 && target.Event != nil {
				src := attacker.Index
				target.GambitPlanet = &src
			}
		}
	}
}

// Step 10: dispatches, ascending by id.
func (bs *build) buildDispatches() {
	canon := bs.raw.Locales[bs.canon]
	localized := make(map[int64]map[string]string)
	for loc, lp := range bs.raw.Locales {
		if lp == nil {
			continue
		}
		for _, n := range lp.News {
			if localized[n.ID] == nil {
				localized[n.ID] = make(map[string]string)
			}
			localized[n.ID][loc] = n.Message
		}
	}

	dispatches := make([]Dispatch, 0, len(canon.News))
	for _, n := range canon.News {
		dispatches = append(dispatches, Dispatch{
			ID:        n.ID,
			Published: bs.abs(n.Published),
			Type:      n.Type,
			Message:   n.Message,
			Localized: localized[n.ID],
		})
	}
	sort.Slice(dispatches, func(i, j int) bool { return dispatches[i].ID < dispatches[j].ID })
	bs.snap.Dispatches = dispatches
}

// Step 10 (cont.): global events, ascending by id.
func (bs *build) buildGlobalEvents() {
	localized := make(map[int64]map[string]EventText)
	for loc, lp := range bs.raw.Locales {
		if lp == nil || lp.Status == nil {
			continue
		}
		for _, ge := range lp.Status.GlobalEvents {
			if localized[ge.EventID] == nil {
				localized[ge.EventID] = make(map[string]EventText)
			}
			localized[ge.EventID][loc] = EventText{Title: ge.Title, Message: ge.Message}
		}
	}

	events := make([]GlobalEvent, 0, len(bs.status.GlobalEvents))
	for _, ge := range bs.status.GlobalEvents {
		events = append(events, GlobalEvent{
			ID:            ge.EventID,
			Title:         ge.Title,
			Message:       ge.Message,
			Localized:     localized[ge.EventID],
			Faction:       Faction(ge.Race),
			AssignmentID:  int64(ge.AssignmentID32),
			Effects:       bs.resolveEffects(ge.EffectIDs),
			PlanetIndices: ge.PlanetIndices,
			Expiry:        bs.abs(ge.ExpireTime),
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	bs.snap.GlobalEvents = events
}

// Step 11: space station, votes and the Eagle Storm rule.
func (bs *build) buildDSS() {
	if len(bs.status.SpaceStations) > 0 {
		if p, ok := bs.snap.Planets[bs.status.SpaceStations[0].PlanetIndex]; ok {
			p.DSSInOrbit = true
		}
	}

	st := bs.raw.Station
	if st == nil {
		return
	}
	dss := &DSS{
		ID:          st.ID32,
		PlanetIndex: st.PlanetIndex,
		MoveAt:      bs.abs(st.CurrentElectionEndWarTime),
		Flags:       st.Flags,
	}
	for _, ta := range st.TacticalActions {
		action := TacticalAction{
			ID:          ta.ID32,
			Name:        ta.Name,
			Description: ta.StrategicDescription,
			Status:      TacticalStatus(ta.Status),
			StatusEnd:   bs.abs(ta.StatusExpireAtWarTimeSeconds),
			Known:       isKnownTacticalAction(ta.Name),
		}
		if !action.Known {
			bs.logUnknown("tactical_action", ta.Name)
		}
		for _, c := range ta.Cost {
			action.Costs = append(action.Costs, Cost{
				ID:                c.ID,
				ItemMixID:         c.ItemMixID,
				Target:            c.TargetValue,
				Current:           c.CurrentValue,
				DeltaPerSecond:    c.DeltaPerSecond,
				MaxDonation:       c.MaxDonationAmount,
				MaxDonationPeriod: time.Duration(c.MaxDonationPeriodSeconds) * time.Second,
			})
		}
		dss.TacticalActions = append(dss.TacticalActions, action)
	}

	if v := bs.raw.Votes; v != nil {
		votes := &Votes{ElectionID: v.ElectionID, End: bs.abs(v.EndWarTime)}
		for _, o := range v.Options {
			votes.Options = append(votes.Options, VoteOption{PlanetIndex: o.PlanetIndex, Votes: o.Votes})
		}
		sort.SliceStable(votes.Options, func(i, j int) bool { return votes.Options[i].Votes > votes.Options[j].Votes })
		dss.Votes = votes
	}

	if p, ok := bs.snap.Planets[dss.PlanetIndex]; ok {
		p.DSSInOrbit = true
		bs.applyEagleStorm(dss, p)
	}
	bs.snap.DSS = dss
}

// applyEagleStorm extends the orbited planet's defense event by the remaining
// duration of an active Eagle Storm.
func (bs *build) applyEagleStorm(dss *DSS, p *Planet) {
	if p.Event == nil {
		return
	}
	for _, ta := range dss.TacticalActions {
		if !strings.EqualFold(strings.TrimSpace(ta.Name), EagleStormName) || ta.Status != StatusActive {
			continue
		}
		if remaining := ta.StatusEnd.Sub(bs.at); remaining > 0 {
			p.Event.End = p.Event.End.Add(remaining)
		}
		return
	}
}

// Steam player count and patch notes, ascending by id.
func (bs *build) buildSteam() {
	bs.snap.SteamPlayers = bs.raw.SteamPlayerCount
	for _, item := range bs.raw.SteamNews {
		id, err := strconv.ParseUint(item.GID, 10, 64)
		if err != nil {
			bs.log.Debug().Str("gid", item.GID).Msg("Steam news item with non-numeric id skipped")
			continue
		}
		bs.snap.PatchNotes = append(bs.snap.PatchNotes, SteamNews{
			ID:        id,
			Title:     item.Title,
			URL:       item.URL,
			Author:    item.Author,
			Contents:  item.Contents,
			Published: time.Unix(item.Date, 0).UTC(),
		})
	}
	sort.Slice(bs.snap.PatchNotes, func(i, j int) bool { return bs.snap.PatchNotes[i].ID < bs.snap.PatchNotes[j].ID })
}
