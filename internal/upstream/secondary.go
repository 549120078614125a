// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package upstream

import (
	"context"
	"fmt"

	"github.com/tomtom215/warmonitor/internal/config"
	"github.com/tomtom215/warmonitor/internal/logging"
	"github.com/tomtom215/warmonitor/internal/models"
)

// SourceSecondary is the secondary API source name.
const SourceSecondary = "secondary-api"

// SecondaryClient fetches station votes and the personal order from the
// authenticated secondary API.
type SecondaryClient struct {
	c *Client
}

// NewSecondaryClient creates a secondary API client authenticated with the
// configured bearer token.
func NewSecondaryClient(cfg config.SecondaryConfig, up config.UpstreamConfig) *SecondaryClient {
	logging.Info().
		Str("base_url", cfg.BaseURL).
		Str("token", logging.SanitizeToken(cfg.Token)).
		Msg("Secondary API client configured")

	return &SecondaryClient{c: NewClient(Options{
		Name:              SourceSecondary,
		BaseURL:           cfg.BaseURL,
		Timeout:           up.Timeout,
		Retries:           up.Retries,
		RetryDelay:        up.RetryDelay,
		RequestsPerSecond: up.RequestsPerSecond,
		Burst:             up.Burst,
		Headers:           map[string]string{"Authorization": "Bearer " + cfg.Token},
	})}
}

// NewSecondaryClientWith wraps an existing base client. The client must
// already carry the Authorization header.
func NewSecondaryClientWith(c *Client) *SecondaryClient {
	return &SecondaryClient{c: c}
}

// Votes fetches the pending relocation poll of a station.
func (s *SecondaryClient) Votes(ctx context.Context, stationID uint32) (*models.StationVotes, error) {
	return getPtr[models.StationVotes](ctx, s.c, fmt.Sprintf("/api/v1/space-station/%d/votes", stationID), nil, nil)
}

// PersonalOrder fetches the current personal order.
func (s *SecondaryClient) PersonalOrder(ctx context.Context) ([]models.Assignment, error) {
	items, err := getPtr[[]models.Assignment](ctx, s.c, "/api/v1/personal-order", nil, nil)
	if items == nil {
		return nil, err
	}
	return *items, nil
}
