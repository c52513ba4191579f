// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides wrappers applied to command handlers.

# Wrappers

  - WithLogging: structured start/completion logging with duration
  - RequirePollManager: rejects authors without the poll-manager role

Wrappers compose around CommandFunc the same way HTTP middleware wraps
http.HandlerFunc:

	router.Handle("start", middleware.WithLogging(
		middleware.RequirePollManager(h.Start)))
*/
package middleware
