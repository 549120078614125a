// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package api

import (
	"time"

	"github.com/tomtom215/warmonitor/internal/differ"
	"github.com/tomtom215/warmonitor/internal/snapshot"
	"github.com/tomtom215/warmonitor/internal/tracker"
)

// Pipeline is the in-process contract the status surface reads from.
// Implemented by sync.Manager.
type Pipeline interface {
	Latest() *snapshot.Snapshot
	LastEvents() []differ.ChangeEvent
	Tracker() *tracker.Tracker
	LastBuildTime() time.Time
	Stale(maxAge time.Duration) bool
}

// Handler serves the status endpoints.
type Handler struct {
	pipeline   Pipeline
	staleAfter time.Duration
	startTime  time.Time
	now        func() time.Time
}

// NewHandler creates a handler. staleAfter drives the /healthz verdict.
func NewHandler(pipeline Pipeline, staleAfter time.Duration) *Handler {
	return &Handler{
		pipeline:   pipeline,
		staleAfter: staleAfter,
		startTime:  time.Now(),
		now:        time.Now,
	}
}

// meta describes the snapshot the response was served from.
func (h *Handler) meta() Metadata {
	m := Metadata{Timestamp: h.now()}
	if built := h.pipeline.LastBuildTime(); !built.IsZero() {
		m.BuiltAt = &built
	}
	m.Stale = h.pipeline.Stale(h.staleAfter)
	return m
}
