// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
)

type Config struct {
	BotToken    string
	Prefix      string
	MetricsAddr string
}

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("apella", flag.ContinueOnError)

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BotToken, "token", "", "Discord bot token (prefer env)")

	fs.StringVar(&cfg.Prefix, "prefix", "", "Command prefix")
	fs.StringVar(&cfg.MetricsAddr, "metrics", "", "Prometheus listen address (empty disables)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.BotToken == "" {
		cfg.BotToken = os.Getenv("BOT_TOKEN")
	}
	if cfg.BotToken == "" {
		return Config{}, errors.New("bot token required (use -token or BOT_TOKEN env)")
	}

	if cfg.Prefix == "" {
		cfg.Prefix = os.Getenv("COMMAND_PREFIX")
		if cfg.Prefix == "" {
			cfg.Prefix = "!" // default
		}
	}

	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = os.Getenv("METRICS_ADDR")
	}

	return cfg, nil
}
