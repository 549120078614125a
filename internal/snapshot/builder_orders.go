// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"sort"
	"strconv"
	"time"

	"github.com/tomtom215/warmonitor/internal/models"
)

// Step 9: major orders, soonest-expiring last.
func (bs *build) buildMajorOrders() {
	canon := bs.raw.Locales[bs.canon]
	orders := make([]MajorOrder, 0, len(canon.Assignments))
	for _, a := range canon.Assignments {
		mo := bs.parseAssignment(a)
		mo.Localized = bs.localizedOrderText(a.ID32)
		orders = append(orders, mo)
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Expiry.After(orders[j].Expiry) })

	for _, mo := range orders {
		bs.tagAssignmentTargets(mo)
	}
	bs.snap.MajorOrders = orders
}

func (bs *build) buildPersonalOrder() {
	if len(bs.raw.PersonalOrder) == 0 {
		return
	}
	po := bs.parseAssignment(bs.raw.PersonalOrder[0])
	bs.snap.PersonalOrder = &po
}

// localizedOrderText collects the text of assignment id from every locale.
func (bs *build) localizedOrderText(id int64) map[string]OrderText {
	out := make(map[string]OrderText)
	for loc, lp := range bs.raw.Locales {
		if lp == nil {
			continue
		}
		for _, a := range lp.Assignments {
			if a.ID32 == id {
				out[loc] = orderText(a.Setting)
				break
			}
		}
	}
	return out
}

func orderText(s models.AssignmentSetting) OrderText {
	return OrderText{
		Title:       s.OverrideTitle,
		Briefing:    s.OverrideBrief,
		Description: s.TaskDescription,
	}
}

func (bs *build) parseAssignment(a models.Assignment) MajorOrder {
	mo := MajorOrder{
		ID:     a.ID32,
		Type:   a.Setting.Type,
		Text:   orderText(a.Setting),
		Expiry: bs.at.Add(time.Duration(a.ExpiresIn) * time.Second),
		Flags:  a.Setting.Flags,
	}
	switch mo.Flags {
	case FlagsAllTasks, FlagsAllTasksAlt, FlagsAnyTask, FlagsAnyTaskAlt:
	default:
		bs.logUnknown("assignment_flags", strconv.Itoa(mo.Flags))
	}

	switch {
	case len(a.Setting.Rewards) > 0:
		for _, r := range a.Setting.Rewards {
			mo.Rewards = append(mo.Rewards, Reward{Type: r.Type, ID: r.ID32, Amount: r.Amount})
		}
	case a.Setting.Reward != nil:
		r := a.Setting.Reward
		mo.Rewards = []Reward{{Type: r.Type, ID: r.ID32, Amount: r.Amount}}
	}

	for i, rt := range a.Setting.Tasks {
		var progress int64
		if i < len(a.Progress) {
			progress = a.Progress[i]
		}
		mo.Tasks = append(mo.Tasks, bs.parseTask(rt, progress))
	}
	return mo
}

// parseTask decodes the parallel value arrays of a task. Unmodeled task types
// are decoded with the same slot table and reported as "unknown".
func (bs *build) parseTask(rt models.AssignmentTask, progress int64) Task {
	t := Task{Type: TaskType(rt.Type), Progress: progress}
	if !t.Type.Known() {
		bs.logUnknown("task_type", strconv.Itoa(rt.Type))
	}

	var locType, locIndex int64
	for slot, v := range slotMap(rt.ValueTypes, rt.Values) {
		switch slot {
		case SlotFaction:
			t.Faction = Faction(v)
		case SlotTarget:
			t.Target = v
		case SlotEnemy:
			t.EnemyID = v
		case SlotItem:
			t.ItemID = v
		case SlotItemMix:
			t.ItemMixID = v
		case SlotObjective:
			t.Objective = v
		case SlotMinPlayers:
			t.MinPlayers = v
		case SlotDifficulty:
			t.Difficulty = v
		case SlotLocationType:
			locType = v
		case SlotLocationIndex:
			locIndex = v
		default:
			if t.Extra == nil {
				t.Extra = make(map[int]int64)
			}
			t.Extra[slot] = v
		}
	}

	switch LocationKind(locType) {
	case LocationPlanet:
		t.Location = Location{Kind: LocationPlanet, PlanetIndex: int(locIndex)}
	case LocationSector:
		t.Location = Location{
			Kind:     LocationSector,
			SectorID: int(locIndex),
			Sector:   bs.catalogue.SectorName(int(locIndex), bs.canon, bs.canon),
		}
	case LocationNone:
	default:
		bs.logUnknown("location_type", strconv.FormatInt(locType, 10))
	}
	return t
}

// tagAssignmentTargets marks planets and regions referenced by unfinished
// tasks of mo.
func (bs *build) tagAssignmentTargets(mo MajorOrder) {
	for _, t := range mo.Tasks {
		if t.Done() {
			continue
		}
		switch t.Location.Kind {
		case LocationPlanet:
			if p, ok := bs.snap.Planets[t.Location.PlanetIndex]; ok {
				tagPlanet(p)
			}
		case LocationSector:
			for _, p := range bs.snap.Planets {
				if p.SectorID == t.Location.SectorID {
					tagPlanet(p)
				}
			}
		}
	}
}

func tagPlanet(p *Planet) {
	p.InAssignment = true
	for i := range p.Regions {
		p.Regions[i].InAssignment = true
	}
}
