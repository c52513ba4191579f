// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/danielhkuo/apella/auth"
	"github.com/danielhkuo/apella/cliparse"
	"github.com/danielhkuo/apella/handlers"
	"github.com/danielhkuo/apella/middleware"
	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/platform"
)

// Router maps command verbs to wrapped handlers and reports failures
// back to the invoking user.
type Router struct {
	routes map[string]middleware.CommandFunc
	msgr   platform.Messenger
}

func NewRouter(h *handlers.CommandHandler, msgr platform.Messenger, cfg cliparse.Config) *Router {
	manage := func(fn middleware.CommandFunc) middleware.CommandFunc {
		return middleware.WithLogging(middleware.RequirePollManager(fn))
	}

	return &Router{
		msgr: msgr,
		routes: map[string]middleware.CommandFunc{
			// Poll management (poll-manager role required)
			"create":   manage(h.Create),
			"title":    manage(h.Title),
			"body":     manage(h.Body),
			"option":   manage(h.Option),
			"start":    manage(h.Start),
			"end":      manage(h.End),
			"delete":   manage(h.Delete),
			"resetall": manage(h.ResetAll),

			// Voting (any member, gated by voting-channel permissions)
			"vote":     middleware.WithLogging(h.Vote),
			"withdraw": middleware.WithLogging(h.Withdraw),

			"help": middleware.WithLogging(h.Help),
		},
	}
}

// Dispatch routes one tokenized command. Unknown verbs are ignored so
// ordinary chat that happens to start with the prefix stays harmless.
func (r *Router) Dispatch(cmd models.Command) {
	fn, ok := r.routes[cmd.Verb]
	if !ok {
		return
	}

	err := fn(cmd)
	if err == nil {
		return
	}

	origin := platform.MessageRef{Channel: platform.ChannelRef(cmd.ChannelID), ID: cmd.MessageID}
	switch {
	case errors.Is(err, auth.ErrNotPollManager):
		r.reply(origin, "you need the `poll-manager` role to manage polls")
	case errors.Is(err, handlers.ErrGuildNotReady):
		r.reply(origin, "still setting up this server, try again in a moment")
	default:
		r.reply(origin, "sorry, that command failed - check my permissions and try again")
	}
}

func (r *Router) reply(origin platform.MessageRef, text string) {
	if _, err := r.msgr.Reply(origin, text); err != nil {
		slog.Error("failed to send failure reply", "error", err)
	}
}

// Parse splits a raw message into verb and arguments, stripping the
// command prefix. ok is false when the message is not a command.
func Parse(raw, prefix string) (verb string, args []string, ok bool) {
	if !strings.HasPrefix(raw, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(raw[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
