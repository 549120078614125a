// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

/*
Package middleware provides HTTP middleware for the status API.

  - Compression: gzip for clients that accept it
  - PrometheusMetrics: request count, latency and in-flight gauge

Both take and return http.Handler so they compose with chi:

	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(middleware.Compression)
	    r.Get("/snapshot", h.Snapshot)
	})

PrometheusMetrics labels requests with the chi route pattern, not the raw
path, so /api/v1/planets/{planet}/end-time is one series regardless of the
planet requested. Requests that match no route are labelled "unmatched".
*/
package middleware
