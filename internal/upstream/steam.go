// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tomtom215/warmonitor/internal/config"
	"github.com/tomtom215/warmonitor/internal/models"
)

// SourceSteam is the Steam Web API source name.
const SourceSteam = "steam-api"

// SteamClient fetches the current player count and announcement feed.
type SteamClient struct {
	c         *Client
	appID     int
	feedLabel string
	count     int
}

// NewSteamClient creates a Steam client. Retry and pacing settings are shared
// with the war API.
func NewSteamClient(cfg config.SteamConfig, up config.UpstreamConfig) *SteamClient {
	return NewSteamClientWith(cfg, NewClient(Options{
		Name:              SourceSteam,
		BaseURL:           cfg.BaseURL,
		Timeout:           up.Timeout,
		Retries:           up.Retries,
		RetryDelay:        up.RetryDelay,
		RequestsPerSecond: up.RequestsPerSecond,
		Burst:             up.Burst,
	}))
}

// NewSteamClientWith wraps an existing base client.
func NewSteamClientWith(cfg config.SteamConfig, c *Client) *SteamClient {
	return &SteamClient{c: c, appID: cfg.AppID, feedLabel: cfg.FeedLabel, count: cfg.NewsCount}
}

// PlayerCount returns the current number of players.
func (s *SteamClient) PlayerCount(ctx context.Context) (*int, error) {
	q := url.Values{}
	q.Set("appid", strconv.Itoa(s.appID))
	resp, err := getPtr[models.SteamPlayerCountResponse](ctx, s.c, "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/", q, nil)
	if resp == nil {
		return nil, err
	}
	n := resp.Response.PlayerCount
	return &n, nil
}

// News returns the app's news items whose feed label matches the configured
// label. An empty label keeps every item.
func (s *SteamClient) News(ctx context.Context) ([]models.SteamNewsItem, error) {
	q := url.Values{}
	q.Set("appid", strconv.Itoa(s.appID))
	if s.count > 0 {
		q.Set("count", strconv.Itoa(s.count))
	}
	resp, err := getPtr[models.SteamNewsResponse](ctx, s.c, "/ISteamNews/GetNewsForApp/v2/", q, nil)
	if resp == nil {
		return nil, err
	}

	items := make([]models.SteamNewsItem, 0, len(resp.AppNews.NewsItems))
	for _, item := range resp.AppNews.NewsItems {
		if s.feedLabel == "" || item.FeedLabel == s.feedLabel {
			items = append(items, item)
		}
	}
	return items, nil
}
