// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/warmonitor/internal/logging"
)

// Snapshot serves the latest snapshot.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap := h.pipeline.Latest()
	if snap == nil {
		respondError(w, http.StatusServiceUnavailable, "NO_SNAPSHOT", "No snapshot has been built yet", nil)
		return
	}
	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     snap,
		Metadata: h.meta(),
	})
}

// Events serves the change events of the most recent cycle.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     h.pipeline.LastEvents(),
		Metadata: h.meta(),
	})
}

// LiberationTrend serves the liberation rate window of a planet.
func (h *Handler) LiberationTrend(w http.ResponseWriter, r *http.Request) {
	planet, err := parsePlanetIndex(chi.URLParam(r, "planet"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	entry, ok := h.pipeline.Tracker().Liberation(planet)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_TRACKED", "Planet liberation is not tracked", nil)
		return
	}

	trend := TrendResponse{
		Key:        planet,
		Value:      entry.Value,
		Target:     entry.Target,
		LastUpdate: entry.LastUpdate,
		Samples:    entry.Samples(),
	}
	if rate, ok := entry.ChangeRatePerHour(); ok {
		trend.RatePerHour = &rate
	}
	if at, ok := entry.CompleteTime(h.now()); ok {
		trend.CompleteAt = &at
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     trend,
		Metadata: h.meta(),
	})
}

// PlanetEndTime serves the projected completion of a planet's campaign.
func (h *Handler) PlanetEndTime(w http.ResponseWriter, r *http.Request) {
	planet, err := parsePlanetIndex(chi.URLParam(r, "planet"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	snap := h.pipeline.Latest()
	if snap == nil {
		respondError(w, http.StatusServiceUnavailable, "NO_SNAPSHOT", "No snapshot has been built yet", nil)
		return
	}
	if _, ok := snap.Planet(planet); !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Unknown planet", nil)
		return
	}

	proj, ok := h.pipeline.Tracker().EndTime(snap, planet, h.now())
	if !ok {
		logging.Ctx(r.Context()).Debug().Int("planet", planet).Msg("No end time projection available")
		respondError(w, http.StatusNotFound, "NO_PROJECTION", "Not enough data to project an end time", nil)
		return
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     proj,
		Metadata: h.meta(),
	})
}
