// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package tracker

import (
	"math/rand/v2"
	"time"

	"github.com/tomtom215/warmonitor/internal/metrics"
)

// family is one keyed set of entries.
type family[K comparable] struct {
	name     string
	size     int
	spread   float64
	interval time.Duration
	rng      *rand.Rand
	entries  map[K]*Entry
}

func newFamily[K comparable](name string, cfg Config, rng *rand.Rand) *family[K] {
	return &family[K]{
		name:     name,
		size:     cfg.Window,
		spread:   cfg.BootstrapSpread,
		interval: cfg.Interval,
		rng:      rng,
		entries:  make(map[K]*Entry),
	}
}

// observe records a new absolute value for key. The first observation only
// stores the value. The first delta seeds the whole window around itself so
// a rate is available immediately; later deltas are appended.
func (f *family[K]) observe(key K, value, target float64, at time.Time) {
	e, ok := f.entries[key]
	if !ok {
		f.entries[key] = newEntry(f.size, f.interval, value, target, at)
		return
	}

	delta := value - e.Value
	if len(e.window) == 0 {
		f.seed(e, delta)
	} else {
		e.push(delta)
	}
	e.Value = value
	e.Target = target
	e.LastUpdate = at
}

// seed fills the window with samples drawn uniformly between d/spread and
// d*spread.
func (f *family[K]) seed(e *Entry, d float64) {
	lo, hi := d/f.spread, d*f.spread
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := 0; i < f.size; i++ {
		e.push(lo + f.rng.Float64()*(hi-lo))
	}
}

func (f *family[K]) get(key K) (Entry, bool) {
	e, ok := f.entries[key]
	if !ok {
		return Entry{}, false
	}
	cp := *e
	cp.window = e.Samples()
	return cp, true
}

// retain drops every key not in keep.
func (f *family[K]) retain(keep map[K]struct{}) {
	for k := range f.entries {
		if _, ok := keep[k]; !ok {
			delete(f.entries, k)
		}
	}
}

func (f *family[K]) remove(key K) {
	delete(f.entries, key)
}

func (f *family[K]) count() int {
	return len(f.entries)
}

func (f *family[K]) recordSize() {
	metrics.TrackedKeys.WithLabelValues(f.name).Set(float64(len(f.entries)))
}
