// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

/*
Package upstream implements the fetch clients for every external source of
war state: the official war API, the Steam Web API and the authenticated
secondary API.

Every fetch has the same contract. A successful fetch returns the decoded
payload. Timeouts, non-200 responses, transport errors, malformed bodies and
an open circuit breaker are retried a bounded number of times and then
reported as "unavailable this cycle" by returning a nil payload and a nil
error. Only transport-security failures (*TLSError) and context cancellation
are returned as errors, since retrying cannot fix them.

Resilience:
  - one gobreaker circuit breaker per source (opens at >=60% failures over
    at least 10 requests, probes again after 2 minutes)
  - a token-bucket limiter paces requests per source
  - linear backoff between attempts, cancellable through the context
*/
package upstream
