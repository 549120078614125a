// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"fmt"
	"time"
)

// TaskType is the upstream task discriminator.
type TaskType int

const (
	TaskRetrieve  TaskType = 1
	TaskGather    TaskType = 2
	TaskEradicate TaskType = 3
	TaskObjective TaskType = 4
	TaskStratagem TaskType = 5
	TaskDonate    TaskType = 6
	TaskExtract   TaskType = 7
	TaskOperation TaskType = 9
	TaskMission   TaskType = 10
	TaskLiberate  TaskType = 11
	TaskDefend    TaskType = 12
	TaskHold      TaskType = 13
	TaskOutpace   TaskType = 14
	TaskExpand    TaskType = 15
)

const taskUnknownName = "unknown"

var taskTypeNames = map[TaskType]string{
	TaskRetrieve:  "retrieve",
	TaskGather:    "gather",
	TaskEradicate: "eradicate",
	TaskObjective: "objective",
	TaskStratagem: "stratagem",
	TaskDonate:    "donate",
	TaskExtract:   "extract",
	TaskOperation: "operation",
	TaskMission:   "mission",
	TaskLiberate:  "liberate",
	TaskDefend:    "defend",
	TaskHold:      "hold",
	TaskOutpace:   "outpace",
	TaskExpand:    "expand",
}

// Known reports whether the type has a modeled variant.
func (t TaskType) Known() bool {
	_, ok := taskTypeNames[t]
	return ok
}

// String returns the variant name, or "unknown" for unmodeled codes.
func (t TaskType) String() string {
	if name, ok := taskTypeNames[t]; ok {
		return name
	}
	return taskUnknownName
}

// Task value-type slots.
const (
	SlotFaction       = 1
	SlotTarget        = 3
	SlotEnemy         = 4
	SlotItem          = 5
	SlotItemMix       = 6
	SlotObjective     = 7
	SlotMinPlayers    = 8
	SlotDifficulty    = 9
	SlotLocationType  = 11
	SlotLocationIndex = 12
)

// LocationKind says which location reference a task carries.
type LocationKind int

const (
	LocationNone   LocationKind = 0 // faction-wide or galaxy-wide
	LocationPlanet LocationKind = 1
	LocationSector LocationKind = 2
)

// Location is where a task must be done. Exactly one of PlanetIndex or
// Sector is meaningful, selected by Kind.
type Location struct {
	Kind        LocationKind `json:"kind"`
	PlanetIndex int          `json:"planet_index,omitempty"`
	SectorID    int          `json:"sector_id,omitempty"`
	Sector      string       `json:"sector,omitempty"`
}

// Task is one objective of a major or personal order. Only the fields
// relevant to Type are set; slots with no modeled meaning land in Extra.
type Task struct {
	Type       TaskType      `json:"type"`
	Faction    Faction       `json:"faction,omitempty"`
	Target     int64         `json:"target"`
	Progress   int64         `json:"progress"`
	EnemyID    int64         `json:"enemy_id,omitempty"`
	ItemID     int64         `json:"item_id,omitempty"`
	ItemMixID  int64         `json:"item_mix_id,omitempty"`
	Objective  int64         `json:"objective,omitempty"`
	MinPlayers int64         `json:"min_players,omitempty"`
	Difficulty int64         `json:"difficulty,omitempty"`
	Location   Location      `json:"location"`
	Extra      map[int]int64 `json:"extra,omitempty"`
}

// Name is the variant name used by consumers; unmodeled types yield "unknown".
func (t Task) Name() string { return t.Type.String() }

// ProgressPerc is Progress/Target, 0 when the target is unset.
func (t Task) ProgressPerc() float64 {
	if t.Target <= 0 {
		return 0
	}
	return float64(t.Progress) / float64(t.Target)
}

// Done reports whether the task reached its target.
func (t Task) Done() bool {
	return t.Target > 0 && t.Progress >= t.Target
}

// Reward granted on completion.
type Reward struct {
	Type   int    `json:"type"`
	ID     uint32 `json:"id"`
	Amount int64  `json:"amount"`
}

// OrderText is the localized text of an order.
type OrderText struct {
	Title       string `json:"title"`
	Briefing    string `json:"briefing"`
	Description string `json:"description"`
}

// Assignment flag values. 0/1 require every task, 2/3 any single task.
const (
	FlagsAllTasks    = 0
	FlagsAllTasksAlt = 1
	FlagsAnyTask     = 2
	FlagsAnyTaskAlt  = 3
)

// MajorOrder is a galaxy-wide assignment (also used for the personal order).
// Text holds the canonical locale; Localized holds every fetched locale.
type MajorOrder struct {
	ID        int64                `json:"id"`
	Type      int                  `json:"type"`
	Text      OrderText            `json:"text"`
	Localized map[string]OrderText `json:"localized,omitempty"`
	Tasks     []Task               `json:"tasks"`
	Rewards   []Reward             `json:"rewards,omitempty"`
	Expiry    time.Time            `json:"expiry"`
	Flags     int                  `json:"flags"`
}

// AnyTask reports whether the flags select OR semantics.
func (m *MajorOrder) AnyTask() bool {
	return m.Flags == FlagsAnyTask || m.Flags == FlagsAnyTaskAlt
}

// Complete evaluates the order outlook from its tasks and flags.
func (m *MajorOrder) Complete() bool {
	if len(m.Tasks) == 0 {
		return false
	}
	if m.AnyTask() {
		for _, t := range m.Tasks {
			if t.Done() {
				return true
			}
		}
		return false
	}
	for _, t := range m.Tasks {
		if !t.Done() {
			return false
		}
	}
	return true
}

func (m *MajorOrder) String() string {
	return fmt.Sprintf("order %d (%d tasks)", m.ID, len(m.Tasks))
}
