// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - BotToken: Discord bot token (required)
  - Prefix: chat command prefix (default: "!")
  - MetricsAddr: Prometheus listen address (empty disables metrics)

# CLI Flags

	-token    Discord bot token
	-prefix   Command prefix
	-metrics  Metrics listen address

# Environment Variables

Flags fall back to environment variables:

	BOT_TOKEN      → -token
	COMMAND_PREFIX → -prefix
	METRICS_ADDR   → -metrics

CLI flags take precedence over environment variables. main loads a
.env file via godotenv before parsing, so a local config.env works in
development.

# Validation

ParseFlags returns an error if BOT_TOKEN is missing.
*/
package cliparse
