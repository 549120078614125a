// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

package services

import (
	"context"
	"fmt"
)

// StartStopManager matches the sync.Manager lifecycle.
type StartStopManager interface {
	Start(ctx context.Context) error
	Stop()
}

// PipelineService runs the poll cycle manager as a supervised service.
type PipelineService struct {
	manager StartStopManager
}

// NewPipelineService creates a new pipeline service wrapper.
func NewPipelineService(manager StartStopManager) *PipelineService {
	return &PipelineService{manager: manager}
}

// Serve implements suture.Service. It starts the manager, blocks until ctx
// is done, then stops the manager and waits for the running cycle.
func (s *PipelineService) Serve(ctx context.Context) error {
	if err := s.manager.Start(ctx); err != nil {
		return fmt.Errorf("pipeline manager start failed: %w", err)
	}

	<-ctx.Done()
	s.manager.Stop()
	return ctx.Err()
}

// String implements fmt.Stringer for suture's logs.
func (s *PipelineService) String() string {
	return "pipeline-manager"
}
