// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

/*
Package supervisor provides process supervision using suture v4.

Every long-running goroutine of the server runs as a suture.Service inside a
two-layer tree:

	RootSupervisor ("maisonmai-analytics")
	├── DataSupervisor ("data-layer")
	│   ├── cache-janitor   (cache.Cache expiry sweep)
	│   └── cache-warmer    (if analytics.warm_interval > 0)
	└── APISupervisor ("api-layer")
	    └── http-server

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog; pass slog.New(logging.NewSlogHandler()) so they
land in the zerolog stream with everything else.

Usage:

	tree, err := supervisor.NewSupervisorTree(slog.New(logging.NewSlogHandler()), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(svc.Cache())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
