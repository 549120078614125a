// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/warmonitor/internal/differ"
	"github.com/tomtom215/warmonitor/internal/snapshot"
)

func TestTopic(t *testing.T) {
	if got := Topic(differ.KindCampaignStarted); got != "warmonitor.campaign_started" {
		t.Errorf("Topic() = %q", got)
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(0)
	defer func() { _ = bus.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := bus.Subscribe(ctx, differ.KindDSSMoved)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	moved := differ.NewChangeEvent(differ.KindDSSMoved)
	moved.FromPlanetIndex = 64
	moved.PlanetIndex = 125
	started := differ.NewChangeEvent(differ.KindCampaignStarted)
	started.Faction = snapshot.Terminids

	if err := bus.Publish(ctx, []differ.ChangeEvent{started, moved}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-messages:
		if msg.UUID != moved.EventID {
			t.Errorf("UUID = %q, want %q", msg.UUID, moved.EventID)
		}
		if got := msg.Metadata.Get("kind"); got != string(differ.KindDSSMoved) {
			t.Errorf("kind metadata = %q", got)
		}
		ev, err := Decode(msg)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if ev.FromPlanetIndex != 64 || ev.PlanetIndex != 125 {
			t.Errorf("decoded = %+v", ev)
		}
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}

	// the campaign event went to a topic with no subscriber
	select {
	case msg := <-messages:
		t.Errorf("unexpected message %s", msg.UUID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_Listen(t *testing.T) {
	bus := NewBus(0)
	defer func() { _ = bus.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- bus.Listen(ctx, func(_ context.Context, ev differ.ChangeEvent) error {
			// fail once to exercise redelivery
			if calls.Add(1) == 1 {
				return errors.New("presentation layer busy")
			}
			cancel()
			return nil
		}, differ.KindDispatchPublished)
	}()

	ev := differ.NewChangeEvent(differ.KindDispatchPublished)
	ev.Dispatch = &snapshot.Dispatch{ID: 7, Message: "Hold the line"}

	// subscription setup is asynchronous; republish until delivered
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for calls.Load() == 0 {
		if err := bus.Publish(context.Background(), []differ.ChangeEvent{ev}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Listen() error = %v, want context.Canceled", err)
	}
	if got := calls.Load(); got < 2 {
		t.Errorf("handler calls = %d, want redelivery after failure", got)
	}
}

func TestBus_Closed(t *testing.T) {
	bus := NewBus(4)
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := bus.Publish(context.Background(), []differ.ChangeEvent{differ.NewChangeEvent(differ.KindDSSMoved)}); !errors.Is(err, ErrClosed) {
		t.Errorf("Publish() after Close error = %v, want ErrClosed", err)
	}
	if _, err := bus.Subscribe(context.Background(), differ.KindDSSMoved); !errors.Is(err, ErrClosed) {
		t.Errorf("Subscribe() after Close error = %v, want ErrClosed", err)
	}
}
