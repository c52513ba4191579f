// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"reflect"
	"strings"
	"testing"

	"github.com/danielhkuo/apella/cliparse"
	"github.com/danielhkuo/apella/handlers"
	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/registry"
	"github.com/danielhkuo/apella/testutil"
)

func newTestRouter(t *testing.T) (*Router, *testutil.Platform) {
	t.Helper()
	fake := testutil.NewPlatform()
	regs := registry.NewSet()
	regs.Put(testutil.GuildID, testutil.Surfaces())
	cfg := cliparse.Config{Prefix: "!"}
	h := handlers.NewCommandHandler(regs, fake, fake, fake, cfg)
	return NewRouter(h, fake, cfg), fake
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		prefix   string
		wantVerb string
		wantArgs []string
		wantOK   bool
	}{
		{
			name:     "bare verb",
			raw:      "!create",
			prefix:   "!",
			wantVerb: "create",
			wantOK:   true,
		},
		{
			name:     "verb with arguments",
			raw:      "!title abc123 Pizza Friday",
			prefix:   "!",
			wantVerb: "title",
			wantArgs: []string{"abc123", "Pizza", "Friday"},
			wantOK:   true,
		},
		{
			name:     "extra whitespace collapses",
			raw:      "!option   :thumbsup:   yes",
			prefix:   "!",
			wantVerb: "option",
			wantArgs: []string{":thumbsup:", "yes"},
			wantOK:   true,
		},
		{
			name:   "ordinary chat",
			raw:    "hello there",
			prefix: "!",
			wantOK: false,
		},
		{
			name:   "prefix alone",
			raw:    "!",
			prefix: "!",
			wantOK: false,
		},
		{
			name:     "multi-character prefix",
			raw:      "poll? vote :thumbsup:",
			prefix:   "poll? ",
			wantVerb: "vote",
			wantArgs: []string{":thumbsup:"},
			wantOK:   true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verb, args, ok := Parse(tc.raw, tc.prefix)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if verb != tc.wantVerb {
				t.Errorf("verb = %q, want %q", verb, tc.wantVerb)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) && !(len(args) == 0 && len(tc.wantArgs) == 0) {
				t.Errorf("args = %v, want %v", args, tc.wantArgs)
			}
		})
	}
}

func TestDispatchIgnoresUnknownVerbs(t *testing.T) {
	r, fake := newTestRouter(t)

	r.Dispatch(testutil.Command("definitely-not-a-command"))
	if len(fake.Messages) != 0 {
		t.Errorf("unknown verb produced output: %v", fake.Messages)
	}
}

func TestDispatchRejectsNonManagers(t *testing.T) {
	r, fake := newTestRouter(t)

	cmd := testutil.Command("create")
	cmd.AuthorRoles = []string{models.RoleVoter}
	r.Dispatch(cmd)

	if !strings.Contains(fake.LastReply(), "poll-manager") {
		t.Errorf("expected role hint, got %q", fake.LastReply())
	}
}

func TestDispatchReportsUnprovisionedGuild(t *testing.T) {
	r, fake := newTestRouter(t)

	cmd := testutil.Command("create")
	cmd.GuildID = "guild-unknown"
	r.Dispatch(cmd)

	if !strings.Contains(fake.LastReply(), "still setting up") {
		t.Errorf("expected setup reply, got %q", fake.LastReply())
	}
}

func TestDispatchRunsHandler(t *testing.T) {
	r, fake := newTestRouter(t)

	r.Dispatch(testutil.Command("create"))
	if !fake.ContainsLive(testutil.ManagementChannel, "Untitled Poll") {
		t.Error("create did not publish a draft preview")
	}
}

func TestHelpNeedsNoRole(t *testing.T) {
	r, fake := newTestRouter(t)

	cmd := testutil.Command("help")
	cmd.AuthorRoles = nil
	r.Dispatch(cmd)

	if !strings.Contains(fake.LastReply(), "create") {
		t.Errorf("help reply missing command reference: %q", fake.LastReply())
	}
}
