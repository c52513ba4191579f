// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Apella poll bot.

Apella manages governance polls inside Discord guilds: members with the
poll-manager role draft polls in a management channel, publish them into
dedicated voting channels, and close them with a final tally in a
results channel.

# Starting the Bot

The bot requires a token via environment variable or CLI flag:

	BOT_TOKEN=... go run main.go

Or with flags:

	go run main.go -token "..." -prefix "!" -metrics ":9100"

A .env file in the working directory is loaded first.

# Configuration

  - BOT_TOKEN (-token): Discord bot token (required)
  - COMMAND_PREFIX (-prefix): chat command prefix (default "!")
  - METRICS_ADDR (-metrics): Prometheus listen address (optional)

# Architecture

The bot uses a handler-based architecture with dependency injection:

  - poll: poll lifecycle engine, ballot ledger, tally, rendering
  - registry: per-guild stage queues and vote-channel routing
  - handlers: chat command handlers
  - router: verb dispatch with logging/authorization middleware
  - platform: interfaces to the chat platform
  - discord: discordgo implementation of platform + guild provisioning
  - middleware: command logging and role checks
  - models: shared types and constants
  - auth: poll id generation and role authorization
  - cliparse: configuration parsing
  - metrics: Prometheus counters

All poll state is in-memory by design; a restart clears every poll.

See package documentation for each component.
*/
package main
