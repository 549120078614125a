// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Fetch Client Set
	FetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmonitor_fetch_requests_total",
			Help: "Upstream fetch attempts by source and result",
		},
		[]string{"source", "result"}, // result: "success", "retry", "unavailable", "tls_error"
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warmonitor_fetch_duration_seconds",
			Help:    "Duration of upstream fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Pipeline
	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "warmonitor_cycle_duration_seconds",
			Help:    "Duration of a full poll cycle (pull, build, track, diff)",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	Cycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmonitor_cycles_total",
			Help: "Poll cycles by outcome",
		},
		[]string{"result"},
	)

	LastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warmonitor_last_build_timestamp_seconds",
			Help: "Unix timestamp of the last successfully built snapshot",
		},
	)

	ChangeEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmonitor_change_events_total",
			Help: "Change events emitted by the differ, by kind",
		},
		[]string{"kind"},
	)

	TrackedKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "warmonitor_tracked_keys",
			Help: "Number of keys held by each rate tracker family",
		},
		[]string{"family"},
	)

	ActiveCampaigns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warmonitor_active_campaigns",
			Help: "Campaigns in the latest snapshot",
		},
	)

	// Status API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warmonitor_api_requests_total",
			Help: "Total number of status API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warmonitor_api_request_duration_seconds",
			Help:    "Status API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "warmonitor_api_active_requests",
			Help: "Current number of in-flight status API requests",
		},
	)
)

// Cycle outcome labels.
const (
	CycleBuilt        = "built"
	CycleSkippedData  = "skipped_no_data"
	CycleSkippedBuild = "skipped_build"
	CycleFailed       = "failed"
)

// RecordFetch records one upstream request attempt.
func RecordFetch(source, result string, duration time.Duration) {
	FetchRequests.WithLabelValues(source, result).Inc()
	FetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCycle records the outcome of a poll cycle. builtAt is only used for
// the built outcome.
func RecordCycle(result string, duration time.Duration, builtAt time.Time) {
	CycleDuration.Observe(duration.Seconds())
	Cycles.WithLabelValues(result).Inc()
	if result == CycleBuilt {
		LastBuild.Set(float64(builtAt.Unix()))
	}
}

// RecordChangeEvent counts an emitted change event.
func RecordChangeEvent(kind string) {
	ChangeEvents.WithLabelValues(kind).Inc()
}

// RecordAPIRequest records a status API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight status API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
