// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

/*
Package metrics defines the Prometheus collectors exported by warmonitor.

Collectors are registered on the default registry through promauto and exposed
at /metrics by the status server.

# Available Metrics

Fetch Client Set:
  - warmonitor_fetch_requests_total{source,result}: attempts per upstream endpoint
  - warmonitor_fetch_duration_seconds{source}: request latency
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Pipeline:
  - warmonitor_cycle_duration_seconds
  - warmonitor_cycles_total{result}: built, skipped_no_data, skipped_build, failed
  - warmonitor_last_build_timestamp_seconds
  - warmonitor_change_events_total{kind}
  - warmonitor_tracked_keys{family}
  - warmonitor_active_campaigns
*/
package metrics
