// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("BOT_TOKEN", "env-token")
	os.Setenv("COMMAND_PREFIX", "?")
	os.Setenv("METRICS_ADDR", ":9100")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BotToken != "env-token" {
		t.Errorf("expected token from env, got %q", cfg.BotToken)
	}
	if cfg.Prefix != "?" {
		t.Errorf("expected prefix '?', got %q", cfg.Prefix)
	}
	if cfg.MetricsAddr != ":9100" {
		t.Errorf("expected metrics addr :9100, got %q", cfg.MetricsAddr)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("BOT_TOKEN", "env-token")
	os.Setenv("COMMAND_PREFIX", "?")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-token", "cli-token", "-prefix", "$"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.BotToken != "cli-token" {
		t.Errorf("CLI should override env: got %q", cfg.BotToken)
	}
	if cfg.Prefix != "$" {
		t.Errorf("CLI should override env: got %q", cfg.Prefix)
	}
}

func TestParseFlags_DefaultPrefix(t *testing.T) {
	os.Setenv("BOT_TOKEN", "env-token")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Prefix != "!" {
		t.Errorf("expected default prefix '!', got %q", cfg.Prefix)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("metrics should default to disabled, got %q", cfg.MetricsAddr)
	}
}

func TestParseFlags_MissingToken(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when no bot token is provided")
	}
}
