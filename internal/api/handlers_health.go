// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package api

import (
	"net/http"
)

// Healthz reports pipeline freshness. It answers 503 when no snapshot was
// built within the stale threshold.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	health := HealthStatus{
		Status:     "healthy",
		StaleAfter: h.staleAfter.Seconds(),
		Uptime:     now.Sub(h.startTime).Seconds(),
	}
	if last := h.pipeline.LastBuildTime(); !last.IsZero() {
		health.LastBuildTime = &last
		health.SnapshotAge = now.Sub(last).Seconds()
	}

	status := http.StatusOK
	if h.pipeline.Stale(h.staleAfter) {
		health.Status = "stale"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, &APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: h.meta(),
	})
}
