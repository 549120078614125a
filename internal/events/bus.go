// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/warmonitor/internal/differ"
	"github.com/tomtom215/warmonitor/internal/logging"
)

// TopicPrefix prefixes every change event topic.
const TopicPrefix = "warmonitor."

// DefaultBuffer is the per-subscriber output channel buffer.
const DefaultBuffer = 256

// ErrClosed is returned after Close.
var ErrClosed = errors.New("event bus is closed")

// Topic returns the topic a change event kind is published on.
func Topic(kind differ.Kind) string {
	return TopicPrefix + string(kind)
}

// Bus publishes change events to subscribers in the same process.
// Messages published with no subscriber on their topic are dropped.
type Bus struct {
	pubsub *gochannel.GoChannel

	mu     sync.RWMutex
	closed bool
}

// NewBus creates an event bus. buffer <= 0 selects DefaultBuffer.
func NewBus(buffer int64) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: buffer,
		}, logging.NewWatermillAdapter()),
	}
}

// Publish serializes each event and publishes it on its kind's topic. The
// event id becomes the message UUID.
func (b *Bus) Publish(ctx context.Context, events []differ.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	for i := range events {
		ev := &events[i]
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("serialize event %s: %w", ev.EventID, err)
		}

		msg := message.NewMessage(ev.EventID, data)
		msg.Metadata.Set("kind", string(ev.Kind))
		msg.Metadata.Set("schema_version", strconv.Itoa(ev.SchemaVersion))
		msg.Metadata.Set("correlation_id", logging.CorrelationIDFromContext(ctx))

		if err := b.pubsub.Publish(Topic(ev.Kind), msg); err != nil {
			return fmt.Errorf("publish event %s: %w", ev.EventID, err)
		}
	}
	return nil
}

// Subscribe returns the raw message stream for one event kind. The channel
// closes when ctx is done or the bus is closed. Each message must be acked.
func (b *Bus) Subscribe(ctx context.Context, kind differ.Kind) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrClosed
	}
	return b.pubsub.Subscribe(ctx, Topic(kind))
}

// Handler processes one decoded change event.
type Handler func(ctx context.Context, ev differ.ChangeEvent) error

// Listen subscribes to the given kinds and calls h for every event until ctx
// is done. Messages are acked when h succeeds and nacked otherwise, which
// makes the bus redeliver them.
func (b *Bus) Listen(ctx context.Context, h Handler, kinds ...differ.Kind) error {
	if len(kinds) == 0 {
		kinds = differ.Kinds
	}

	var wg sync.WaitGroup
	for _, kind := range kinds {
		messages, err := b.Subscribe(ctx, kind)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", kind, err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range messages {
				handle(ctx, msg, h)
			}
		}()
	}
	wg.Wait()
	return ctx.Err()
}

func handle(ctx context.Context, msg *message.Message, h Handler) {
	ev, err := Decode(msg)
	if err != nil {
		// undecodable payloads are never going to succeed
		logging.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed change event")
		msg.Ack()
		return
	}
	if err := h(ctx, ev); err != nil {
		logging.Warn().Err(err).Str("kind", string(ev.Kind)).Str("event_id", ev.EventID).Msg("Change event handler failed, redelivering")
		msg.Nack()
		return
	}
	msg.Ack()
}

// Decode parses a change event from a bus message.
func Decode(msg *message.Message) (differ.ChangeEvent, error) {
	var ev differ.ChangeEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return ev, fmt.Errorf("decode change event: %w", err)
	}
	return ev, nil
}

// Close shuts the bus down and closes every subscription.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}
