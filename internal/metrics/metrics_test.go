// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFetch(t *testing.T) {
	before := testutil.ToFloat64(FetchRequests.WithLabelValues("war_status", "success"))

	RecordFetch("war_status", "success", 20*time.Millisecond)
	RecordFetch("war_status", "success", 30*time.Millisecond)

	after := testutil.ToFloat64(FetchRequests.WithLabelValues("war_status", "success"))
	if after-before != 2 {
		t.Errorf("expected 2 recorded fetches, got %v", after-before)
	}
}

func TestRecordCycle(t *testing.T) {
	tests := []struct {
		name      string
		result    string
		wantBuild bool
	}{
		{"built cycle stamps last build", CycleBuilt, true},
		{"skipped cycle leaves last build", CycleSkippedData, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			LastBuild.Set(0)
			builtAt := time.Unix(1_700_000_000, 0)
			before := testutil.ToFloat64(Cycles.WithLabelValues(tt.result))

			RecordCycle(tt.result, time.Second, builtAt)

			if got := testutil.ToFloat64(Cycles.WithLabelValues(tt.result)) - before; got != 1 {
				t.Errorf("cycle counter delta = %v, want 1", got)
			}
			got := testutil.ToFloat64(LastBuild)
			if tt.wantBuild && got != float64(builtAt.Unix()) {
				t.Errorf("LastBuild = %v, want %v", got, builtAt.Unix())
			}
			if !tt.wantBuild && got != 0 {
				t.Errorf("LastBuild = %v, want untouched", got)
			}
		})
	}
}

func TestRecordChangeEvent(t *testing.T) {
	before := testutil.ToFloat64(ChangeEvents.WithLabelValues("dss_moved"))
	RecordChangeEvent("dss_moved")
	if got := testutil.ToFloat64(ChangeEvents.WithLabelValues("dss_moved")) - before; got != 1 {
		t.Errorf("change event delta = %v, want 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/snapshot", "200"))

	RecordAPIRequest("GET", "/api/v1/snapshot", "200", 5*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/snapshot", "200")) - before; got != 1 {
		t.Errorf("request counter delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("active after inc = %v, want 1", got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 0 {
		t.Errorf("active after dec = %v, want 0", got)
	}
}
