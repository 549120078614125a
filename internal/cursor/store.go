// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package cursor

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("cursor store closed")

// Store loads and saves the cursor.
type Store interface {
	// Load returns the stored cursor, or New() when nothing is stored.
	Load(ctx context.Context) (Cursor, error)
	// Save writes every field of c.
	Save(ctx context.Context, c Cursor) error
	Close() error
}

// MemoryStore keeps the cursor in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	cur    Cursor
	saved  bool
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (Cursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Cursor{}, ErrClosed
	}
	if !m.saved {
		return New(), nil
	}
	return m.cur.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, c Cursor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.cur = c.Clone()
	m.saved = true
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
