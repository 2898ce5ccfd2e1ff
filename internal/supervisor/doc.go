// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package supervisor runs the long-lived parts of SteamPulse under suture v4.

	RootSupervisor ("steampulse")
	├── DataSupervisor ("data-layer")
	│   └── WarehouseProbe
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing probe restarts without touching the HTTP server, and the other
way round. Supervisor events are logged through sutureslog, which writes
to the zerolog global logger via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewWarehouseProbe(db, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx) // returns when ctx is canceled
*/
package supervisor
