// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package logging

import "strings"

// SanitizeToken masks a credential for logging, keeping only the last four
// characters so operators can tell two tokens apart.
//
//	SanitizeToken("abcdef123456") // "********3456"
func SanitizeToken(token string) string {
	switch {
	case token == "":
		return ""
	case len(token) <= 8:
		return "[REDACTED]"
	default:
		return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
	}
}

// SanitizeAuthHeader masks the credential part of an Authorization header value.
func SanitizeAuthHeader(value string) string {
	scheme, cred, ok := strings.Cut(value, " ")
	if !ok {
		return SanitizeToken(value)
	}
	return scheme + " " + SanitizeToken(cred)
}

// Truncate shortens s to at most n bytes, appending "..." when cut.
// Used for upstream error bodies.
func Truncate(s string, n int) string {
	if n <= 3 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
