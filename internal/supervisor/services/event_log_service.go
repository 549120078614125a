// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package services

import (
	"context"
	"errors"

	"github.com/tomtom215/warmonitor/internal/differ"
	"github.com/tomtom215/warmonitor/internal/events"
	"github.com/tomtom215/warmonitor/internal/logging"
)

// Listener matches events.Bus.Listen.
type Listener interface {
	Listen(ctx context.Context, h events.Handler, kinds ...differ.Kind) error
}

// EventLogService consumes every change event from the bus and writes it to
// the log. It is the in-process stand-in for a presentation layer.
type EventLogService struct {
	bus Listener
}

// NewEventLogService creates the consumer.
func NewEventLogService(bus Listener) *EventLogService {
	return &EventLogService{bus: bus}
}

// Serve implements suture.Service.
func (s *EventLogService) Serve(ctx context.Context) error {
	err := s.bus.Listen(ctx, logChangeEvent)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if err == nil {
		// subscriptions closed underneath us, let suture restart
		return errors.New("event bus subscriptions closed")
	}
	return err
}

func logChangeEvent(_ context.Context, ev differ.ChangeEvent) error {
	e := logging.Info().
		Str("kind", string(ev.Kind)).
		Str("event_id", ev.EventID).
		Time("at", ev.Timestamp)

	switch ev.Kind {
	case differ.KindCampaignStarted, differ.KindCampaignEnded:
		e = e.Int("planet", ev.PlanetIndex).Int("campaign", ev.CampaignID).
			Str("faction", ev.Faction.String()).Bool("defense", ev.Defense)
		if ev.Outcome != "" {
			e = e.Str("outcome", string(ev.Outcome))
		}
	case differ.KindDSSMoved:
		e = e.Int("from", ev.FromPlanetIndex).Int("to", ev.PlanetIndex)
	case differ.KindTacticalActionStatus:
		e = e.Str("action", ev.ActionName).Int("from", int(ev.FromStatus)).Int("to", int(ev.ToStatus))
	case differ.KindDispatchPublished:
		e = e.Int64("dispatch", ev.Dispatch.ID).Str("title", logging.Truncate(ev.Dispatch.Title(), 80))
	case differ.KindGlobalEventPublished:
		e = e.Int64("global_event", ev.GlobalEvent.ID)
	case differ.KindMajorOrderAnnounced:
		e = e.Int64("major_order", ev.MajorOrder.ID)
	case differ.KindPatchNotesPublished:
		e = e.Str("title", logging.Truncate(ev.PatchNotes.Title, 80))
	}
	e.Msg("Change event")
	return nil
}

// String implements fmt.Stringer for suture's logs.
func (s *EventLogService) String() string {
	return "event-log"
}
