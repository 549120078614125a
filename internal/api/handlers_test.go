// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/warmonitor/internal/differ"
	"github.com/tomtom215/warmonitor/internal/models"
	"github.com/tomtom215/warmonitor/internal/snapshot"
	"github.com/tomtom215/warmonitor/internal/tracker"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fakePipeline is a static Pipeline.
type fakePipeline struct {
	latest    *snapshot.Snapshot
	events    []differ.ChangeEvent
	tracker   *tracker.Tracker
	lastBuild time.Time
}

func (f *fakePipeline) Latest() *snapshot.Snapshot        { return f.latest }
func (f *fakePipeline) LastEvents() []differ.ChangeEvent { return f.events }
func (f *fakePipeline) Tracker() *tracker.Tracker        { return f.tracker }
func (f *fakePipeline) LastBuildTime() time.Time         { return f.lastBuild }
func (f *fakePipeline) Stale(maxAge time.Duration) bool {
	return f.lastBuild.IsZero() || testNow.Sub(f.lastBuild) > maxAge
}

// buildSnapshot builds a snapshot where planet 5 has an attack campaign at
// the given health out of 100.
func buildSnapshot(t *testing.T, health int64, at time.Time) *snapshot.Snapshot {
	t.Helper()
	raw := &models.RawBundle{
		Canonical: "en-US",
		Locales: map[string]*models.LocalePayload{
			"en-US": {Status: &models.WarStatus{
				WarID: 801,
				Time:  3600,
				PlanetStatus: []models.PlanetStatus{
					{Index: 0, Owner: 1, Health: 1000, Players: 10},
					{Index: 5, Owner: 3, Health: health, Players: 300},
				},
				Campaigns: []models.Campaign{{ID: 42, PlanetIndex: 5}},
			}},
		},
		WarInfo: &models.WarInfo{PlanetInfos: []models.PlanetInfo{
			{Index: 0, MaxHealth: 1000},
			{Index: 5, MaxHealth: 100},
		}},
		FetchedAt: at,
	}
	snap, err := snapshot.NewBuilder(nil, snapshot.DefaultGambitMaxRegen).
		WithClock(func() time.Time { return at }).
		Build(raw, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return snap
}

// newTestPipeline returns a fresh pipeline whose tracker has two liberation
// observations for planet 5.
func newTestPipeline(t *testing.T) *fakePipeline {
	t.Helper()
	trk := tracker.New(tracker.Config{Seed: 7})
	trk.Update(buildSnapshot(t, 80, testNow.Add(-time.Minute)))
	latest := buildSnapshot(t, 70, testNow)
	trk.Update(latest)

	ev := differ.NewChangeEvent(differ.KindCampaignStarted)
	ev.PlanetIndex = 5
	return &fakePipeline{
		latest:    latest,
		events:    []differ.ChangeEvent{ev},
		tracker:   trk,
		lastBuild: testNow,
	}
}

func newTestServer(p Pipeline, mc *ChiMiddlewareConfig) http.Handler {
	h := NewHandler(p, 5*time.Minute)
	h.now = func() time.Time { return testNow }
	return NewRouter(h, NewChiMiddleware(mc)).SetupChi()
}

func doGet(t *testing.T, srv http.Handler, path string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp APIResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}

func checkStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		lastBuild  time.Time
		wantStatus int
		wantHealth string
	}{
		{"never built", time.Time{}, http.StatusServiceUnavailable, "stale"},
		{"fresh", testNow.Add(-time.Minute), http.StatusOK, "healthy"},
		{"stale", testNow.Add(-10 * time.Minute), http.StatusServiceUnavailable, "stale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakePipeline{lastBuild: tt.lastBuild}, nil)
			rec, resp := doGet(t, srv, "/healthz")
			checkStatus(t, rec, tt.wantStatus)

			data, ok := resp.Data.(map[string]any)
			if !ok {
				t.Fatalf("data = %T", resp.Data)
			}
			if data["status"] != tt.wantHealth {
				t.Errorf("health status = %v, want %s", data["status"], tt.wantHealth)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	t.Run("not built yet", func(t *testing.T) {
		rec, resp := doGet(t, newTestServer(&fakePipeline{}, nil), "/api/v1/snapshot")
		checkStatus(t, rec, http.StatusServiceUnavailable)
		if resp.Error == nil || resp.Error.Code != "NO_SNAPSHOT" {
			t.Errorf("error = %+v", resp.Error)
		}
	})

	t.Run("latest", func(t *testing.T) {
		rec, resp := doGet(t, newTestServer(newTestPipeline(t), nil), "/api/v1/snapshot")
		checkStatus(t, rec, http.StatusOK)
		if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Error("security headers missing")
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("request id missing")
		}
		data := resp.Data.(map[string]any)
		if data["war_id"] != float64(801) {
			t.Errorf("war_id = %v", data["war_id"])
		}
		if resp.Metadata.BuiltAt == nil || resp.Metadata.Stale {
			t.Errorf("metadata = %+v", resp.Metadata)
		}
	})
}

func TestEvents(t *testing.T) {
	rec, resp := doGet(t, newTestServer(newTestPipeline(t), nil), "/api/v1/events")
	checkStatus(t, rec, http.StatusOK)
	events, ok := resp.Data.([]any)
	if !ok || len(events) != 1 {
		t.Fatalf("data = %+v", resp.Data)
	}
	if kind := events[0].(map[string]any)["kind"]; kind != string(differ.KindCampaignStarted) {
		t.Errorf("kind = %v", kind)
	}
}

func TestLiberationTrend(t *testing.T) {
	srv := newTestServer(newTestPipeline(t), nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"tracked planet", "/api/v1/trends/liberation/5", http.StatusOK},
		{"untracked planet", "/api/v1/trends/liberation/0", http.StatusNotFound},
		{"invalid index", "/api/v1/trends/liberation/abc", http.StatusBadRequest},
		{"negative index", "/api/v1/trends/liberation/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doGet(t, srv, tt.path)
			checkStatus(t, rec, tt.wantStatus)
		})
	}

	_, resp := doGet(t, srv, "/api/v1/trends/liberation/5")
	data := resp.Data.(map[string]any)
	rate, ok := data["rate_per_hour"].(float64)
	if !ok || rate <= 0 {
		t.Errorf("rate_per_hour = %v, want positive", data["rate_per_hour"])
	}
	if samples := data["samples"].([]any); len(samples) != tracker.DefaultWindow {
		t.Errorf("samples = %d, want %d", len(samples), tracker.DefaultWindow)
	}
	if _, ok := data["complete_at"]; !ok {
		t.Error("complete_at missing")
	}
}

func TestPlanetEndTime(t *testing.T) {
	srv := newTestServer(newTestPipeline(t), nil)

	rec, resp := doGet(t, srv, "/api/v1/planets/5/end-time")
	checkStatus(t, rec, http.StatusOK)
	data := resp.Data.(map[string]any)
	if data["source"] != tracker.SourcePlanet {
		t.Errorf("source = %v, want %s", data["source"], tracker.SourcePlanet)
	}

	rec, _ = doGet(t, srv, "/api/v1/planets/99/end-time")
	checkStatus(t, rec, http.StatusNotFound)

	rec, _ = doGet(t, srv, "/api/v1/planets/0/end-time")
	checkStatus(t, rec, http.StatusNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&fakePipeline{}, nil)
	doGet(t, srv, "/api/v1/events")

	rec, _ := doGet(t, srv, "/metrics")
	checkStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "go_goroutines") {
		t.Error("metrics body missing default collectors")
	}
	if !strings.Contains(body, `warmonitor_api_requests_total{endpoint="/api/v1/events"`) {
		t.Error("metrics body missing status API request counter")
	}
}

func TestRateLimit(t *testing.T) {
	mc := DefaultChiMiddlewareConfig()
	mc.RateLimitRequests = 2
	srv := newTestServer(newTestPipeline(t), mc)

	for i := 0; i < 2; i++ {
		rec, _ := doGet(t, srv, "/api/v1/events")
		checkStatus(t, rec, http.StatusOK)
	}
	rec, resp := doGet(t, srv, "/api/v1/events")
	checkStatus(t, rec, http.StatusTooManyRequests)
	if resp.Error == nil || resp.Error.Code != "RATE_LIMITED" {
		t.Errorf("error = %+v", resp.Error)
	}

	// health is outside the limited group
	rec, _ = doGet(t, srv, "/healthz")
	checkStatus(t, rec, http.StatusOK)
}

func TestCORSPreflight(t *testing.T) {
	mc := DefaultChiMiddlewareConfig()
	mc.CORSAllowedOrigins = []string{"https://dashboard.example.com"}
	srv := newTestServer(&fakePipeline{}, mc)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/snapshot", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
