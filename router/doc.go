// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router dispatches tokenized chat commands to their handlers.

NewRouter wires every verb to its handler with logging and, for
management verbs, the poll-manager role requirement:

	r := router.NewRouter(handlers.NewCommandHandler(...), msgr, cfg)
	r.Dispatch(cmd)

Unknown verbs are silently ignored. Handler errors are logged by the
middleware and answered with a short failure reply; authorization
failures get a role hint instead.

Parse turns a raw prefixed message into a verb and arguments; the
platform adapter calls it before building a models.Command.
*/
package router
