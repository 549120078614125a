// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/warmonitor/internal/logging"
	"github.com/tomtom215/warmonitor/internal/models"
)

// ErrCanonicalMissing signals that the canonical locale's war status could
// not be fetched. The cycle is skipped.
var ErrCanonicalMissing = errors.New("canonical war status missing")

// WarSource is the primary war API.
type WarSource interface {
	Status(ctx context.Context, locale string) (*models.WarStatus, error)
	WarInfo(ctx context.Context) (*models.WarInfo, error)
	News(ctx context.Context, locale string, fromTimestamp int64) ([]models.NewsItem, error)
	Assignments(ctx context.Context, locale string) ([]models.Assignment, error)
	SpaceStation(ctx context.Context, locale string, id uint32) (*models.SpaceStation, error)
	Effects(ctx context.Context) ([]models.GalacticWarEffect, error)
	Summary(ctx context.Context) (*models.WarSummary, error)
}

// SteamSource is the Steam Web API.
type SteamSource interface {
	PlayerCount(ctx context.Context) (*int, error)
	News(ctx context.Context) ([]models.SteamNewsItem, error)
}

// SecondarySource is the authenticated secondary API.
type SecondarySource interface {
	Votes(ctx context.Context, stationID uint32) (*models.StationVotes, error)
	PersonalOrder(ctx context.Context) ([]models.Assignment, error)
}

// AggregatorConfig configures an Aggregator.
type AggregatorConfig struct {
	Locales         []string
	CanonicalLocale string
	// NewsWindow bounds the dispatch feed relative to the current war time.
	NewsWindow time.Duration
}

// Aggregator fetches every source once per cycle. Steam and Secondary may be
// nil when disabled. Safe to call repeatedly; calls must not overlap.
type Aggregator struct {
	cfg       AggregatorConfig
	war       WarSource
	steam     SteamSource
	secondary SecondarySource
	now       func() time.Time

	// stationID is learned from the canonical status of the previous pull.
	stationID atomic.Uint32
}

// NewAggregator creates an aggregator. The canonical locale is fetched even
// when it is missing from cfg.Locales.
func NewAggregator(cfg AggregatorConfig, war WarSource, steam SteamSource, secondary SecondarySource) *Aggregator {
	locales := make([]string, 0, len(cfg.Locales)+1)
	locales = append(locales, cfg.CanonicalLocale)
	for _, l := range cfg.Locales {
		if l != cfg.CanonicalLocale {
			locales = append(locales, l)
		}
	}
	cfg.Locales = locales

	return &Aggregator{
		cfg:       cfg,
		war:       war,
		steam:     steam,
		secondary: secondary,
		now:       time.Now,
	}
}

// StationID returns the space station id learned from the last pull, or 0.
func (a *Aggregator) StationID() uint32 {
	return a.stationID.Load()
}

// Pull fetches one RawBundle. Unavailable sources leave their fields empty.
// An error is returned only for TLS failures and context cancellation.
func (a *Aggregator) Pull(ctx context.Context) (*models.RawBundle, error) {
	bundle := &models.RawBundle{
		Canonical: a.cfg.CanonicalLocale,
		Locales:   make(map[string]*models.LocalePayload, len(a.cfg.Locales)),
	}
	payloads := make([]*models.LocalePayload, len(a.cfg.Locales))
	stationID := a.stationID.Load()

	g, gctx := errgroup.WithContext(ctx)

	for i, locale := range a.cfg.Locales {
		g.Go(func() error {
			p, err := a.pullLocale(gctx, locale)
			if err != nil {
				return fmt.Errorf("locale %s: %w", locale, err)
			}
			payloads[i] = p
			return nil
		})
	}

	g.Go(func() (err error) {
		bundle.WarInfo, err = a.war.WarInfo(gctx)
		return err
	})
	g.Go(func() (err error) {
		bundle.Effects, err = a.war.Effects(gctx)
		return err
	})
	g.Go(func() (err error) {
		bundle.Summary, err = a.war.Summary(gctx)
		return err
	})

	if stationID != 0 {
		g.Go(func() (err error) {
			bundle.Station, err = a.war.SpaceStation(gctx, a.cfg.CanonicalLocale, stationID)
			return err
		})
	}

	if a.steam != nil {
		g.Go(func() (err error) {
			bundle.SteamPlayerCount, err = a.steam.PlayerCount(gctx)
			return err
		})
		g.Go(func() (err error) {
			bundle.SteamNews, err = a.steam.News(gctx)
			return err
		})
	}

	if a.secondary != nil {
		if stationID != 0 {
			g.Go(func() (err error) {
				bundle.Votes, err = a.secondary.Votes(gctx, stationID)
				return err
			})
		}
		g.Go(func() (err error) {
			bundle.PersonalOrder, err = a.secondary.PersonalOrder(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pull: %w", err)
	}

	for i, locale := range a.cfg.Locales {
		if payloads[i] != nil {
			bundle.Locales[locale] = payloads[i]
		}
	}
	bundle.FetchedAt = a.now().UTC()

	if id := bundle.StationID(); id != 0 {
		a.stationID.Store(id)
	}

	logging.Ctx(ctx).Debug().
		Int("locales", len(bundle.Locales)).
		Bool("canonical", bundle.CanonicalPayload() != nil).
		Bool("war_info", bundle.WarInfo != nil).
		Uint32("station_id", stationID).
		Msg("Pulled raw bundle")

	return bundle, nil
}

// pullLocale fetches status, dispatches and assignments for one locale in
// order. A missing status leaves the locale absent.
func (a *Aggregator) pullLocale(ctx context.Context, locale string) (*models.LocalePayload, error) {
	status, err := a.war.Status(ctx, locale)
	if err != nil {
		return nil, err
	}
	if status == nil {
		logging.Ctx(ctx).Warn().Str("locale", locale).Msg("War status unavailable, skipping locale")
		return nil, nil
	}

	from := status.Time - int64(a.cfg.NewsWindow/time.Second)
	news, err := a.war.News(ctx, locale, from)
	if err != nil {
		return nil, err
	}

	assignments, err := a.war.Assignments(ctx, locale)
	if err != nil {
		return nil, err
	}

	return &models.LocalePayload{
		Status:      status,
		News:        news,
		Assignments: assignments,
	}, nil
}
