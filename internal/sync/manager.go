// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/warmonitor/internal/cursor"
	"github.com/tomtom215/warmonitor/internal/differ"
	"github.com/tomtom215/warmonitor/internal/logging"
	"github.com/tomtom215/warmonitor/internal/metrics"
	"github.com/tomtom215/warmonitor/internal/models"
	"github.com/tomtom215/warmonitor/internal/snapshot"
	"github.com/tomtom215/warmonitor/internal/tracker"
)

// Puller produces one raw bundle per cycle. Implemented by Aggregator.
type Puller interface {
	Pull(ctx context.Context) (*models.RawBundle, error)
}

// EventPublisher hands change events to the presentation layer.
// Implemented by internal/events.Bus.
type EventPublisher interface {
	Publish(ctx context.Context, events []differ.ChangeEvent) error
}

// Manager runs the poll cycle. Cycles never overlap; the tracker and the
// cursor are only written from inside a cycle.
type Manager struct {
	interval  time.Duration
	puller    Puller
	builder   *snapshot.Builder
	tracker   *tracker.Tracker
	differ    *differ.Differ
	store     cursor.Store
	publisher EventPublisher
	now       func() time.Time

	cycleMu      sync.Mutex // serializes RunCycle
	cur          cursor.Cursor
	cursorLoaded bool

	mu         sync.RWMutex
	latest     *snapshot.Snapshot
	lastEvents []differ.ChangeEvent
	lastBuild  time.Time
	running    bool
	stopChan   chan struct{}
	wg         sync.WaitGroup
}

// NewManager creates a pipeline manager. publisher may be nil.
func NewManager(interval time.Duration, puller Puller, builder *snapshot.Builder, trk *tracker.Tracker, store cursor.Store, publisher EventPublisher) *Manager {
	return &Manager{
		interval:  interval,
		puller:    puller,
		builder:   builder,
		tracker:   trk,
		differ:    differ.New(trk),
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// Start begins the periodic poll loop. The first cycle runs immediately.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("pipeline manager is already running")
	}
	m.running = true
	m.stopChan = make(chan struct{})
	m.mu.Unlock()

	logging.Info().Dur("interval", m.interval).Msg("Starting pipeline manager")

	m.wg.Add(1)
	go m.pollLoop(ctx)
	return nil
}

// Stop ends the poll loop and waits for the running cycle to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopChan)
	m.mu.Unlock()

	m.wg.Wait()
	logging.Info().Msg("Pipeline manager stopped")
}

func (m *Manager) pollLoop(ctx context.Context) {
	defer m.wg.Done()

	m.runLogged(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.runLogged(ctx)
		}
	}
}

func (m *Manager) runLogged(ctx context.Context) {
	err := m.RunCycle(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.Is(err, ErrCanonicalMissing):
		logging.Warn().Msg("Canonical war status unavailable, keeping previous snapshot")
	default:
		logging.Error().Err(err).Msg("Poll cycle failed, keeping previous snapshot")
	}
}

// pull bounds one Pull by the poll interval so a degraded upstream cannot
// push a cycle into the next tick.
func (m *Manager) pull(ctx context.Context) (*models.RawBundle, error) {
	if m.interval <= 0 {
		return m.puller.Pull(ctx)
	}
	pullCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	bundle, err := m.puller.Pull(pullCtx)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("pull exceeded poll interval %s: %w", m.interval, err)
	}
	return bundle, err
}

// RunCycle runs one pull, build, track, diff and publish pass. On any error
// the previous snapshot stays current.
func (m *Manager) RunCycle(ctx context.Context) error {
	m.cycleMu.Lock()
	defer m.cycleMu.Unlock()

	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := logging.Ctx(ctx)
	start := m.now()

	if !m.cursorLoaded {
		c, err := m.store.Load(ctx)
		if err != nil {
			metrics.RecordCycle(metrics.CycleFailed, m.now().Sub(start), time.Time{})
			return fmt.Errorf("load cursor: %w", err)
		}
		m.cur = c
		m.cursorLoaded = true
	}

	bundle, err := m.pull(ctx)
	if err != nil {
		metrics.RecordCycle(metrics.CycleFailed, m.now().Sub(start), time.Time{})
		return err
	}
	if bundle.CanonicalPayload() == nil {
		metrics.RecordCycle(metrics.CycleSkippedData, m.now().Sub(start), time.Time{})
		return ErrCanonicalMissing
	}

	snap, err := m.builder.Build(bundle, m.Latest())
	if err != nil {
		metrics.RecordCycle(metrics.CycleSkippedBuild, m.now().Sub(start), time.Time{})
		return fmt.Errorf("build snapshot: %w", err)
	}

	m.tracker.Update(snap)
	next, events := m.differ.Diff(m.cur, snap)

	// the in-memory cursor advances even when persisting fails so the next
	// cycle does not announce the same items again
	m.cur = next
	if err := m.store.Save(ctx, next); err != nil {
		log.Error().Err(err).Msg("Failed to persist cursor")
	}

	if m.publisher != nil && len(events) > 0 {
		if err := m.publisher.Publish(ctx, events); err != nil {
			log.Error().Err(err).Int("events", len(events)).Msg("Failed to publish change events")
		}
	}
	for _, ev := range events {
		metrics.RecordChangeEvent(string(ev.Kind))
	}
	metrics.ActiveCampaigns.Set(float64(len(snap.Campaigns)))

	m.mu.Lock()
	m.latest = snap
	m.lastEvents = events
	m.lastBuild = snap.BuiltAt
	m.mu.Unlock()

	metrics.RecordCycle(metrics.CycleBuilt, m.now().Sub(start), snap.BuiltAt)
	log.Info().
		Int("planets", len(snap.Planets)).
		Int("campaigns", len(snap.Campaigns)).
		Int("events", len(events)).
		Dur("duration", m.now().Sub(start)).
		Msg("Poll cycle complete")

	return nil
}

// Latest returns the most recent snapshot, or nil before the first build.
func (m *Manager) Latest() *snapshot.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// LastEvents returns the change events of the most recent successful cycle.
func (m *Manager) LastEvents() []differ.ChangeEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]differ.ChangeEvent, len(m.lastEvents))
	copy(out, m.lastEvents)
	return out
}

// Tracker exposes the rate tracker for read-only lookups.
func (m *Manager) Tracker() *tracker.Tracker {
	return m.tracker
}

// LastBuildTime returns when the latest snapshot was built; zero before the
// first build.
func (m *Manager) LastBuildTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastBuild
}

// Stale reports whether no snapshot was built within maxAge.
func (m *Manager) Stale(maxAge time.Duration) bool {
	last := m.LastBuildTime()
	return last.IsZero() || m.now().Sub(last) > maxAge
}
