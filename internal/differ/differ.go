// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package differ

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/warmonitor/internal/cursor"
	"github.com/tomtom215/warmonitor/internal/logging"
	"github.com/tomtom215/warmonitor/internal/snapshot"
)

// Dispatch filters.
const (
	// MinDispatchLength is the shortest trimmed message worth announcing.
	MinDispatchLength = 5
	// PlanetTag marks news-feed entries that only reference planet tags.
	PlanetTag = "#planet"
	// BriefingTitle marks global events that only carry a briefing.
	BriefingTitle = "BRIEFING"
)

// LiberationClearer drops the liberation trend of a planet.
type LiberationClearer interface {
	ClearLiberation(planet int)
}

// Differ turns (cursor, snapshot) pairs into change events.
type Differ struct {
	tracker LiberationClearer
	log     zerolog.Logger
}

// New creates a differ. tracker may be nil.
func New(tracker LiberationClearer) *Differ {
	return &Differ{
		tracker: tracker,
		log:     logging.With().Str("component", "differ").Logger(),
	}
}

// pass is one Diff call.
type pass struct {
	*Differ
	prev   cursor.Cursor
	next   cursor.Cursor
	snap   *snapshot.Snapshot
	events []ChangeEvent
	// emit is false while priming an uninitialized cursor
	emit bool
}

func (p *pass) add(ev ChangeEvent) {
	if p.emit {
		p.events = append(p.events, ev)
	}
}

// Diff returns the advanced cursor and the events detected in snap. prev is
// not modified. An uninitialized cursor is primed from snap without emitting.
func (d *Differ) Diff(prev cursor.Cursor, snap *snapshot.Snapshot) (cursor.Cursor, []ChangeEvent) {
	if snap == nil {
		return prev, nil
	}
	p := &pass{
		Differ: d,
		prev:   prev,
		next:   prev.Clone(),
		snap:   snap,
		emit:   prev.Initialized,
	}
	if !p.emit {
		d.log.Info().Msg("Priming cursor from current snapshot, no announcements this cycle")
	}

	p.dispatches()
	p.globalEvents()
	p.majorOrders()
	p.patchNotes()
	p.campaigns()
	p.dss()

	p.next.Initialized = true
	for _, ev := range p.events {
		d.log.Debug().Str("kind", string(ev.Kind)).Int("planet", ev.PlanetIndex).Msg("Change detected")
	}
	return p.next, p.events
}

func (p *pass) dispatches() {
	for i := range p.snap.Dispatches {
		dp := p.snap.Dispatches[i]
		if dp.ID <= p.prev.LastDispatchID {
			continue
		}
		if p.next.LastDispatchID < dp.ID {
			p.next.LastDispatchID = dp.ID
		}
		msg := strings.TrimSpace(dp.Message)
		if len(msg) < MinDispatchLength || strings.Contains(msg, PlanetTag) {
			continue
		}
		ev := NewChangeEvent(KindDispatchPublished)
		ev.Dispatch = &dp
		p.add(ev)
	}
}

// globalEvents announces at most one event per pass. The cursor moves past
// suppressed events and stops on the announced one, so later events wait for
// the next pass. Priming moves past everything.
func (p *pass) globalEvents() {
	for i := range p.snap.GlobalEvents {
		ge := p.snap.GlobalEvents[i]
		if ge.ID <= p.prev.LastGlobalEventID {
			continue
		}
		if p.next.LastGlobalEventID < ge.ID {
			p.next.LastGlobalEventID = ge.ID
		}
		if !announceable(ge) {
			continue
		}
		ev := NewChangeEvent(KindGlobalEventPublished)
		ev.Faction = ge.Faction
		ev.GlobalEvent = &ge
		p.add(ev)
		if p.emit {
			return
		}
	}
}

func announceable(ge snapshot.GlobalEvent) bool {
	if ge.AssignmentID != 0 {
		return false
	}
	title := strings.TrimSpace(ge.Title)
	if title == "" && strings.TrimSpace(ge.Message) == "" && len(ge.Effects) == 0 {
		return false
	}
	return !strings.EqualFold(title, BriefingTitle)
}

// majorOrders announces unseen assignment ids and forgets ids that left the
// live list.
func (p *pass) majorOrders() {
	live := make([]int64, 0, len(p.snap.MajorOrders))
	for i := range p.snap.MajorOrders {
		mo := p.snap.MajorOrders[i]
		live = append(live, mo.ID)
		if p.prev.Announced(mo.ID) {
			continue
		}
		ev := NewChangeEvent(KindMajorOrderAnnounced)
		ev.MajorOrder = &mo
		p.add(ev)
	}
	p.next.AnnouncedMajorOrderIDs = live
}

func (p *pass) patchNotes() {
	for i := range p.snap.PatchNotes {
		pn := p.snap.PatchNotes[i]
		if pn.ID <= p.prev.LastPatchNotesID {
			continue
		}
		if p.next.LastPatchNotesID < pn.ID {
			p.next.LastPatchNotesID = pn.ID
		}
		ev := NewChangeEvent(KindPatchNotesPublished)
		ev.PatchNotes = &pn
		p.add(ev)
	}
}

// campaigns correlates campaigns by planet index. A planet whose campaign id
// or defense state changed is treated as one campaign ending and another
// starting.
func (p *pass) campaigns() {
	current := make(map[int]snapshot.Campaign, len(p.snap.Campaigns))
	for _, c := range p.snap.Campaigns {
		current[c.PlanetIndex] = c
	}

	next := make(map[int]cursor.CampaignRecord, len(current))
	for planet, rec := range p.prev.ActiveCampaigns {
		c, ok := current[planet]
		if ok && c.ID == rec.CampaignID && c.Defense == rec.Defense {
			next[planet] = rec
			continue
		}
		p.campaignEnded(planet, rec)
	}

	for _, c := range p.snap.Campaigns {
		if _, ok := next[c.PlanetIndex]; ok {
			continue
		}
		rec := cursor.CampaignRecord{
			CampaignID: c.ID,
			Faction:    c.Faction,
			Defense:    c.Defense,
		}
		if pl, ok := p.snap.Planet(c.PlanetIndex); ok {
			rec.Owner = pl.Owner
			if pl.Event != nil {
				rec.EventType = pl.Event.Type
			}
		}
		next[c.PlanetIndex] = rec

		ev := NewChangeEvent(KindCampaignStarted)
		ev.PlanetIndex = c.PlanetIndex
		ev.CampaignID = c.ID
		ev.Defense = c.Defense
		ev.Faction = c.Faction
		p.add(ev)
	}
	p.next.ActiveCampaigns = next
}

func (p *pass) campaignEnded(planet int, rec cursor.CampaignRecord) {
	owner := snapshot.FactionUnknown
	if pl, ok := p.snap.Planet(planet); ok {
		owner = pl.Owner
	}

	ev := NewChangeEvent(KindCampaignEnded)
	ev.PlanetIndex = planet
	ev.CampaignID = rec.CampaignID
	ev.Defense = rec.Defense
	ev.Faction = rec.Faction
	ev.Outcome = classify(rec, owner)
	p.add(ev)

	if p.tracker != nil {
		p.tracker.ClearLiberation(planet)
	}
}

// classify decides the outcome of a retired campaign from the owner recorded
// when it started and the planet's current owner.
func classify(rec cursor.CampaignRecord, owner snapshot.Faction) Outcome {
	wasHuman := rec.Owner == snapshot.Humans
	isHuman := owner == snapshot.Humans
	switch {
	case wasHuman && isHuman:
		if rec.Defense || rec.EventType == snapshot.EventTypeDefense {
			return OutcomeDefenseWon
		}
		return OutcomeAttackWon
	case wasHuman:
		return OutcomePlanetLost
	case isHuman:
		return OutcomeAttackCampaignWon
	default:
		return OutcomeExpired
	}
}

// dss records the station position and tactical action statuses. Moves and
// status changes are only reported against a previously known value.
func (p *pass) dss() {
	st := p.snap.DSS
	if st == nil {
		return
	}

	if last := p.prev.DSSLastPlanetIndex; last != cursor.NoPlanet && last != st.PlanetIndex {
		ev := NewChangeEvent(KindDSSMoved)
		ev.FromPlanetIndex = last
		ev.PlanetIndex = st.PlanetIndex
		p.add(ev)
	}
	p.next.DSSLastPlanetIndex = st.PlanetIndex

	statuses := make(map[uint32]int, len(st.TacticalActions))
	for _, ta := range st.TacticalActions {
		statuses[ta.ID] = int(ta.Status)
		old, known := p.prev.DSSTacticalActionStatuses[ta.ID]
		if !known || old == int(ta.Status) {
			continue
		}
		ev := NewChangeEvent(KindTacticalActionStatus)
		ev.PlanetIndex = st.PlanetIndex
		ev.ActionID = ta.ID
		ev.ActionName = ta.Name
		ev.FromStatus = snapshot.TacticalStatus(old)
		ev.ToStatus = ta.Status
		p.add(ev)
	}
	p.next.DSSTacticalActionStatuses = statuses
}
