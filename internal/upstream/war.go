// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tomtom215/warmonitor/internal/config"
	"github.com/tomtom215/warmonitor/internal/models"
)

// SourceWar is the war API source name.
const SourceWar = "war-api"

// WarClient fetches the official war API. Locale-dependent endpoints take
// the locale as an Accept-Language header.
type WarClient struct {
	c     *Client
	warID int
}

// NewWarClient creates a war API client from configuration.
func NewWarClient(cfg config.UpstreamConfig) *WarClient {
	headers := map[string]string{}
	if cfg.ClientName != "" {
		headers["X-Super-Client"] = cfg.ClientName
	}
	if cfg.Contact != "" {
		headers["X-Super-Contact"] = cfg.Contact
	}
	return NewWarClientWith(cfg.WarID, NewClient(Options{
		Name:              SourceWar,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		Retries:           cfg.Retries,
		RetryDelay:        cfg.RetryDelay,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		Headers:           headers,
	}))
}

// NewWarClientWith wraps an existing base client.
func NewWarClientWith(warID int, c *Client) *WarClient {
	return &WarClient{c: c, warID: warID}
}

func localeHeader(locale string) map[string]string {
	if locale == "" {
		return nil
	}
	return map[string]string{"Accept-Language": locale}
}

// getPtr fetches into a new T and returns nil when the source is unavailable.
func getPtr[T any](ctx context.Context, c *Client, path string, query url.Values, headers map[string]string) (*T, error) {
	var out T
	ok, err := c.GetJSON(ctx, path, query, headers, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// Status fetches the live war status in locale.
func (w *WarClient) Status(ctx context.Context, locale string) (*models.WarStatus, error) {
	return getPtr[models.WarStatus](ctx, w.c, fmt.Sprintf("/api/WarSeason/%d/Status", w.warID), nil, localeHeader(locale))
}

// WarInfo fetches the static war layout.
func (w *WarClient) WarInfo(ctx context.Context) (*models.WarInfo, error) {
	return getPtr[models.WarInfo](ctx, w.c, fmt.Sprintf("/api/WarSeason/%d/WarInfo", w.warID), nil, nil)
}

// News fetches dispatches published at or after fromTimestamp (war seconds).
func (w *WarClient) News(ctx context.Context, locale string, fromTimestamp int64) ([]models.NewsItem, error) {
	q := url.Values{}
	q.Set("fromTimestamp", strconv.FormatInt(max(fromTimestamp, 0), 10))
	items, err := getPtr[[]models.NewsItem](ctx, w.c, fmt.Sprintf("/api/NewsFeed/%d", w.warID), q, localeHeader(locale))
	if items == nil {
		return nil, err
	}
	return *items, nil
}

// Assignments fetches the active major orders in locale.
func (w *WarClient) Assignments(ctx context.Context, locale string) ([]models.Assignment, error) {
	items, err := getPtr[[]models.Assignment](ctx, w.c, fmt.Sprintf("/api/v2/Assignment/War/%d", w.warID), nil, localeHeader(locale))
	if items == nil {
		return nil, err
	}
	return *items, nil
}

// SpaceStation fetches station details.
func (w *WarClient) SpaceStation(ctx context.Context, locale string, id uint32) (*models.SpaceStation, error) {
	return getPtr[models.SpaceStation](ctx, w.c, fmt.Sprintf("/api/v2/SpaceStation/War/%d/%d", w.warID, id), nil, localeHeader(locale))
}

// Effects fetches the galactic war effect catalogue.
func (w *WarClient) Effects(ctx context.Context) ([]models.GalacticWarEffect, error) {
	items, err := getPtr[[]models.GalacticWarEffect](ctx, w.c, "/api/WarSeason/GalacticWarEffects", nil, nil)
	if items == nil {
		return nil, err
	}
	return *items, nil
}

// Summary fetches galaxy and per-planet statistics.
func (w *WarClient) Summary(ctx context.Context) (*models.WarSummary, error) {
	return getPtr[models.WarSummary](ctx, w.c, fmt.Sprintf("/api/Stats/war/%d/summary", w.warID), nil, nil)
}
