// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package cursor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/warmonitor/internal/logging"
)

const keyPrefix = "cursor:"

// Field keys. Each cursor field is its own badger key.
const (
	keyInitialized     = keyPrefix + "initialized"
	keyLastDispatch    = keyPrefix + "last_dispatch_id"
	keyLastGlobalEvent = keyPrefix + "last_global_event_id"
	keyAnnouncedOrders = keyPrefix + "announced_major_order_ids"
	keyLastPatchNotes  = keyPrefix + "last_patch_notes_id"
	keyDSSPlanet       = keyPrefix + "dss_last_planet_index"
	keyDSSStatuses     = keyPrefix + "dss_tactical_action_statuses"
	keyCampaigns       = keyPrefix + "active_campaigns"
)

// BadgerStore persists the cursor in BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens (or creates) a store in dir. With inMemory set, dir is
// ignored and nothing touches disk.
func OpenBadger(dir string, inMemory bool) (*BadgerStore, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir).WithSyncWrites(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cursor store: %w", err)
	}

	logging.Info().
		Str("path", dir).
		Bool("in_memory", inMemory).
		Msg("Cursor store opened")
	return &BadgerStore{db: db}, nil
}

// field binds a cursor field to its key.
type field struct {
	key string
	ptr any
}

func fields(c *Cursor) []field {
	return []field{
		{keyInitialized, &c.Initialized},
		{keyLastDispatch, &c.LastDispatchID},
		{keyLastGlobalEvent, &c.LastGlobalEventID},
		{keyAnnouncedOrders, &c.AnnouncedMajorOrderIDs},
		{keyLastPatchNotes, &c.LastPatchNotesID},
		{keyDSSPlanet, &c.DSSLastPlanetIndex},
		{keyDSSStatuses, &c.DSSTacticalActionStatuses},
		{keyCampaigns, &c.ActiveCampaigns},
	}
}

// Load reads every field. Missing keys keep their New() defaults.
func (s *BadgerStore) Load(ctx context.Context) (Cursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Cursor{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return Cursor{}, err
	}

	c := New()
	err := s.db.View(func(txn *badger.Txn) error {
		for _, f := range fields(&c) {
			item, err := txn.Get([]byte(f.key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get %s: %w", f.key, err)
			}
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, f.ptr)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", f.key, err)
			}
		}
		return nil
	})
	if err != nil {
		return Cursor{}, fmt.Errorf("load cursor: %w", err)
	}
	return c.Clone(), nil
}

// Save writes each field under its own key. Fields are independent; a
// failure part-way leaves earlier fields updated.
func (s *BadgerStore) Save(ctx context.Context, c Cursor) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	for _, f := range fields(&c) {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := json.Marshal(f.ptr)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.key, err)
		}
		if err := s.db.Update(func(txn *badger.Txn) error {
			return txn.SetEntry(badger.NewEntry([]byte(f.key), data))
		}); err != nil {
			return fmt.Errorf("save %s: %w", f.key, err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close cursor store: %w", err)
	}
	logging.Info().Msg("Cursor store closed")
	return nil
}
