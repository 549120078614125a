// Warmonitor - Galactic War State Aggregation and Change Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/warmonitor

/*
Package supervisor runs warmonitor's long-lived services under a suture v4
supervisor tree.

	RootSupervisor ("warmonitor")
	├── PipelineSupervisor ("pipeline-layer")
	│   ├── PipelineService (poll cycle)
	│   └── EventLogService (change event consumer)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService (status surface, if enabled)

A crashing poll loop is restarted with backoff while the status surface keeps
serving the last snapshot. Supervisor events are logged through sutureslog
on top of logging.NewSlogLogger().

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddPipelineService(services.NewPipelineService(manager))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
