// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"time"

	"github.com/danielhkuo/apella/auth"
	"github.com/danielhkuo/apella/models"
)

// CommandFunc handles one dispatched chat command.
type CommandFunc func(cmd models.Command) error

// WithLogging wraps a handler with command logging
func WithLogging(next CommandFunc) CommandFunc {
	return func(cmd models.Command) error {
		start := time.Now()

		// Log command
		slog.Info("command started",
			"verb", cmd.Verb,
			"guild_id", cmd.GuildID,
			"author_id", cmd.AuthorID,
		)

		// Call the next handler
		err := next(cmd)

		// Log completion
		duration := time.Since(start)
		if err != nil {
			slog.Warn("command failed",
				"verb", cmd.Verb,
				"guild_id", cmd.GuildID,
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
		} else {
			slog.Info("command completed",
				"verb", cmd.Verb,
				"guild_id", cmd.GuildID,
				"duration_ms", duration.Milliseconds(),
			)
		}
		return err
	}
}

// RequirePollManager rejects commands from authors without the
// poll-manager role before they reach the handler.
func RequirePollManager(next CommandFunc) CommandFunc {
	return func(cmd models.Command) error {
		if err := auth.RequirePollManager(cmd.AuthorRoles); err != nil {
			return err
		}
		return next(cmd)
	}
}
