// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/apella/cliparse"
	"github.com/danielhkuo/apella/discord"
	"github.com/danielhkuo/apella/metrics"
)

func main() {
	// Load .env if present; real env vars win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to Discord
	bot, err := discord.NewBot(cfg)
	if err != nil {
		slog.Error("bot setup failed", "error", err)
		os.Exit(1)
	}
	if err := bot.Open(); err != nil {
		slog.Error("gateway connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected", "prefix", cfg.Prefix)

	// Optional metrics listener
	if cfg.MetricsAddr != "" {
		go func() {
			slog.Info("Metrics listening", "addr", cfg.MetricsAddr)
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				slog.Error("metrics listener closed", "error", err)
			}
		}()
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	// Wait for Ctrl-C signal
	<-ctrlc

	slog.Info("Shutting down")
	if err := bot.Close(); err != nil {
		slog.Error("Gateway closed", "error", err)
	} else {
		slog.Info("Gateway closed")
	}
}
