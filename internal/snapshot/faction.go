// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"fmt"
	"strings"
)

// Faction is an owning or attacking faction as encoded upstream.
type Faction int

const (
	FactionUnknown Faction = 0
	Humans         Faction = 1
	Terminids      Faction = 2
	Automaton      Faction = 3
	Illuminate     Faction = 4
)

var factionNames = map[Faction]string{
	Humans:     "humans",
	Terminids:  "terminids",
	Automaton:  "automaton",
	Illuminate: "illuminate",
}

func (f Faction) String() string {
	if name, ok := factionNames[f]; ok {
		return name
	}
	return fmt.Sprintf("faction(%d)", int(f))
}

// MarshalText encodes the faction by name.
func (f Faction) MarshalText() ([]byte, error) {
	if f == FactionUnknown {
		return []byte("unknown"), nil
	}
	return []byte(f.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (f *Faction) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	if s == "unknown" {
		*f = FactionUnknown
		return nil
	}
	for k, v := range factionNames {
		if v == s {
			*f = k
			return nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(s, "faction(%d)", &n); err == nil {
		*f = Faction(n)
		return nil
	}
	return fmt.Errorf("unknown faction %q", s)
}
