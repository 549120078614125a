// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package models

import "time"

// ============================================================================
// Steam Web API
// ============================================================================
// Endpoints:
//   GET /ISteamUserStats/GetNumberOfCurrentPlayers/v1/?appid={appId}
//   GET /ISteamNews/GetNewsForApp/v2/?appid={appId}&count={n}

// SteamPlayerCountResponse wraps the player count.
type SteamPlayerCountResponse struct {
	Response struct {
		PlayerCount int `json:"player_count"`
		Result      int `json:"result"`
	} `json:"response"`
}

// SteamNewsResponse wraps the app news list.
type SteamNewsResponse struct {
	AppNews struct {
		AppID     int             `json:"appid"`
		NewsItems []SteamNewsItem `json:"newsitems"`
	} `json:"appnews"`
}

// SteamNewsItem is one Steam news post.
type SteamNewsItem struct {
	GID       string `json:"gid"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Author    string `json:"author"`
	Contents  string `json:"contents"`
	FeedLabel string `json:"feedlabel"`
	FeedName  string `json:"feedname"`
	Date      int64  `json:"date"` // unix seconds
}

// ============================================================================
// Secondary authenticated API
// ============================================================================

// StationVotes is the pending relocation poll for the space station.
type StationVotes struct {
	ElectionID string       `json:"electionId"`
	EndWarTime int64        `json:"endWarTime"`
	Options    []VoteOption `json:"options"`
}

// VoteOption is one candidate planet in a relocation poll.
type VoteOption struct {
	PlanetIndex int   `json:"planetIndex"`
	Votes       int64 `json:"votes"`
}

// ============================================================================
// Raw bundle
// ============================================================================

// LocalePayload holds the locale-dependent payloads for one language.
// A nil Status means the locale's war status fetch failed this cycle.
type LocalePayload struct {
	Status      *WarStatus
	News        []NewsItem
	Assignments []Assignment
}

// RawBundle is everything one poll cycle fetched. Any field may be absent;
// the snapshot builder decides which absences are fatal.
type RawBundle struct {
	// Canonical is the locale whose payload drives all numeric decisions.
	Canonical string
	Locales   map[string]*LocalePayload

	WarInfo          *WarInfo
	Effects          []GalacticWarEffect
	Summary          *WarSummary
	Station          *SpaceStation
	SteamPlayerCount *int
	SteamNews        []SteamNewsItem
	Votes            *StationVotes
	PersonalOrder    []Assignment

	FetchedAt time.Time
}

// CanonicalPayload returns the canonical locale's payload, or nil when its
// war status is missing.
func (b *RawBundle) CanonicalPayload() *LocalePayload {
	if b == nil {
		return nil
	}
	p := b.Locales[b.Canonical]
	if p == nil || p.Status == nil {
		return nil
	}
	return p
}

// StationID returns the first space station id listed in the canonical war
// status, or 0 when none is known.
func (b *RawBundle) StationID() uint32 {
	p := b.CanonicalPayload()
	if p == nil || len(p.Status.SpaceStations) == 0 {
		return 0
	}
	return p.Status.SpaceStations[0].ID32
}
