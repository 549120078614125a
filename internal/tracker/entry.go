// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package tracker

import (
	"math"
	"time"
)

// maxProjection caps completion projections; anything further out is treated
// as not projectable.
const maxProjection = 100 * 365 * 24 * time.Hour

// Entry is the history of one tracked key. Entries returned by a Tracker are
// copies and safe to keep.
type Entry struct {
	// Value is the latest observed absolute value.
	Value float64
	// Target is the value at which the tracked quantity is complete.
	Target float64
	// Interval is the nominal time between samples.
	Interval time.Duration
	// LastUpdate is the fetch time of the latest observation.
	LastUpdate time.Time

	size   int
	window []float64
}

func newEntry(size int, interval time.Duration, value, target float64, at time.Time) *Entry {
	return &Entry{
		Value:      value,
		Target:     target,
		Interval:   interval,
		LastUpdate: at,
		size:       size,
		window:     make([]float64, 0, size),
	}
}

// push appends a delta, evicting the oldest sample when the window is full.
func (e *Entry) push(delta float64) {
	if len(e.window) == e.size {
		copy(e.window, e.window[1:])
		e.window[e.size-1] = delta
		return
	}
	e.window = append(e.window, delta)
}

// Samples returns the deltas in the window, oldest first.
func (e Entry) Samples() []float64 {
	out := make([]float64, len(e.window))
	copy(out, e.window)
	return out
}

// ChangeRatePerHour is the mean delta per sample scaled to one hour. It
// reports false when the window is empty.
func (e Entry) ChangeRatePerHour() (float64, bool) {
	if len(e.window) == 0 || e.Interval <= 0 {
		return 0, false
	}
	var sum float64
	for _, d := range e.window {
		sum += d
	}
	rate := sum / float64(len(e.window)) * float64(time.Hour) / float64(e.Interval)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false
	}
	return rate, true
}

// CompleteTime projects when Value reaches Target at the current rate. It
// reports false when the rate is zero or negative, or when the target is
// already reached.
func (e Entry) CompleteTime(now time.Time) (time.Time, bool) {
	rate, ok := e.ChangeRatePerHour()
	if !ok || rate <= 0 || e.Value >= e.Target {
		return time.Time{}, false
	}
	return addHours(now, (e.Target-e.Value)/rate)
}

// addHours returns now + h hours, or false when h is not a usable duration.
func addHours(now time.Time, h float64) (time.Time, bool) {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return time.Time{}, false
	}
	if h*float64(time.Hour) > float64(maxProjection) {
		return time.Time{}, false
	}
	return now.Add(time.Duration(h * float64(time.Hour))), true
}
