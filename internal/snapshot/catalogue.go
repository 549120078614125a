// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalogue holds localized display names that the upstream API only
// exposes as numeric ids.
//
//	planets:
//	  0: {en-US: Super Earth, fr-FR: Super-Terre}
//	sectors:
//	  0: {en-US: Sol}
//	regions:
//	  3528713467: {en-US: Liberty City}
//	effects:
//	  71: Orbital Blockade
type Catalogue struct {
	Planets map[int]map[string]string    `yaml:"planets"`
	Sectors map[int]map[string]string    `yaml:"sectors"`
	Regions map[uint32]map[string]string `yaml:"regions"`
	Effects map[int]string               `yaml:"effects"`
}

// LoadCatalogue reads a YAML catalogue. An empty path yields an empty
// catalogue, so every name falls back to its numeric form.
func LoadCatalogue(path string) (*Catalogue, error) {
	if path == "" {
		return &Catalogue{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name catalogue: %w", err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue decodes a YAML catalogue.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	c := &Catalogue{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse name catalogue: %w", err)
	}
	return c, nil
}

// pick returns names[locale], then names[fallback], then "".
func pick(names map[string]string, locale, fallback string) string {
	if n := names[locale]; n != "" {
		return n
	}
	return names[fallback]
}

// PlanetName resolves a planet name, falling back to "Planet #<index>".
func (c *Catalogue) PlanetName(index int, locale, fallback string) string {
	if c != nil {
		if n := pick(c.Planets[index], locale, fallback); n != "" {
			return n
		}
	}
	return fmt.Sprintf("Planet #%d", index)
}

// SectorName resolves a sector name, falling back to "Sector #<id>".
func (c *Catalogue) SectorName(id int, locale, fallback string) string {
	if c != nil {
		if n := pick(c.Sectors[id], locale, fallback); n != "" {
			return n
		}
	}
	return fmt.Sprintf("Sector #%d", id)
}

// RegionName resolves a region name, or "" when unknown.
func (c *Catalogue) RegionName(hash uint32, locale, fallback string) string {
	if c == nil {
		return ""
	}
	return pick(c.Regions[hash], locale, fallback)
}

// EffectName resolves an effect type name. ok is false for unknown types,
// which get a placeholder name.
func (c *Catalogue) EffectName(effectType int) (name string, ok bool) {
	if c != nil {
		if n := c.Effects[effectType]; n != "" {
			return n, true
		}
	}
	return fmt.Sprintf("Unknown effect %d", effectType), false
}
