// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/testutil"
)

func newTestPoll(t *testing.T) (*Poll, *testutil.Platform) {
	t.Helper()
	fake := testutil.NewPlatform()
	p, err := New("abc123", testutil.GuildID, fake, fake, testutil.Surfaces(), "!")
	if err != nil {
		t.Fatalf("Failed to create poll: %v", err)
	}
	return p, fake
}

func TestNewPublishesPreviewAndFooter(t *testing.T) {
	p, fake := newTestPoll(t)

	live := fake.LiveIn(testutil.ManagementChannel)
	if len(live) != 2 {
		t.Fatalf("expected preview + footer in management channel, got %d messages", len(live))
	}
	if !strings.Contains(live[0], models.DefaultTitle) {
		t.Errorf("preview missing default title: %q", live[0])
	}
	if !strings.Contains(live[0], p.ID) {
		t.Errorf("preview missing poll id: %q", live[0])
	}

	// Footer self-destructs on a recorded timer
	if len(fake.Scheduled) != 1 {
		t.Fatalf("expected 1 scheduled delete, got %d", len(fake.Scheduled))
	}
	if fake.Scheduled[0].Delay != FooterTTL {
		t.Errorf("expected footer TTL %v, got %v", FooterTTL, fake.Scheduled[0].Delay)
	}
}

func TestUpdateRerendersPreview(t *testing.T) {
	p, fake := newTestPoll(t)

	if err := p.Update("Lunch Spot", ""); err != nil {
		t.Fatal(err)
	}

	if !fake.ContainsLive(testutil.ManagementChannel, "Lunch Spot") {
		t.Error("preview not updated with new title")
	}
	if p.Body() != models.DefaultBody {
		t.Errorf("body should be untouched, got %q", p.Body())
	}

	// Empty fields leave current values alone
	if err := p.Update("", "Pick a place"); err != nil {
		t.Fatal(err)
	}
	if p.Title() != "Lunch Spot" {
		t.Errorf("title should be untouched, got %q", p.Title())
	}
	if p.Body() != "Pick a place" {
		t.Errorf("expected body updated, got %q", p.Body())
	}
}

func TestUpdateOptionRoundTrip(t *testing.T) {
	p, _ := newTestPoll(t)

	if err := p.UpdateOption("👍", "yes"); err != nil {
		t.Fatal(err)
	}
	if err := p.UpdateOption("👎", "no"); err != nil {
		t.Fatal(err)
	}
	if len(p.Options()) != 2 {
		t.Fatalf("expected 2 options, got %d", len(p.Options()))
	}

	// Replace keeps position
	if err := p.UpdateOption("👍", "yes please"); err != nil {
		t.Fatal(err)
	}
	opts := p.Options()
	if opts[0].Token != "👍" || opts[0].Body != "yes please" {
		t.Errorf("expected replaced option first, got %+v", opts[0])
	}

	// Re-invoking with no body removes the option entirely
	if err := p.UpdateOption("👍", ""); err != nil {
		t.Fatal(err)
	}
	if len(p.Options()) != 1 {
		t.Fatalf("expected 1 option after removal, got %d", len(p.Options()))
	}
	if _, ok := p.Option("👍"); ok {
		t.Error("removed option still present")
	}
}

func TestEditsRejectedOutsideCreating(t *testing.T) {
	p, fake := newTestPoll(t)
	if err := p.UpdateOption("👍", "yes"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.OpenVoting(fake); err != nil {
		t.Fatal(err)
	}
	p.SetStage(models.StageRunning)

	if err := p.Update("New Title", ""); !errors.Is(err, ErrWrongStage) {
		t.Errorf("expected ErrWrongStage from Update, got %v", err)
	}
	if err := p.UpdateOption("👎", "no"); !errors.Is(err, ErrWrongStage) {
		t.Errorf("expected ErrWrongStage from UpdateOption, got %v", err)
	}
}

func TestOpenVotingRequiresOptions(t *testing.T) {
	p, fake := newTestPoll(t)

	if _, err := p.OpenVoting(fake); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
	if len(fake.CreatedChannels) != 0 {
		t.Error("no channel should be created for an empty poll")
	}
	if p.Stage() != models.StageCreating {
		t.Errorf("poll must stay in creating, got %s", p.Stage())
	}
}

func TestOpenVotingPublishesPromptAndInstructions(t *testing.T) {
	p, fake := newTestPoll(t)
	if err := p.UpdateOption("👍", "yes"); err != nil {
		t.Fatal(err)
	}

	channel, err := p.OpenVoting(fake)
	if err != nil {
		t.Fatal(err)
	}
	if len(fake.CreatedChannels) != 1 || fake.CreatedChannels[0] != channel {
		t.Fatalf("expected one created channel %s, got %v", channel, fake.CreatedChannels)
	}

	live := fake.LiveIn(channel)
	if len(live) != 3 {
		t.Fatalf("expected prompt + 2 instruction messages, got %d", len(live))
	}
	if !strings.Contains(live[0], "POLL OPTIONS") {
		t.Errorf("first message should be the prompt: %q", live[0])
	}
	if !strings.Contains(live[1], "!vote") {
		t.Errorf("expected voting instructions, got %q", live[1])
	}
	if !strings.Contains(live[2], "!withdraw") {
		t.Errorf("expected withdraw instructions, got %q", live[2])
	}
}

func TestOpenVotingChannelFailureLeavesPollEditable(t *testing.T) {
	p, fake := newTestPoll(t)
	if err := p.UpdateOption("👍", "yes"); err != nil {
		t.Fatal(err)
	}
	fake.CreateChannelErr = errors.New("missing permissions")

	if _, err := p.OpenVoting(fake); err == nil {
		t.Fatal("expected channel creation failure to propagate")
	}
	if p.Stage() != models.StageCreating {
		t.Errorf("poll must stay in creating after failure, got %s", p.Stage())
	}
	if err := p.Update("Still Editable", ""); err != nil {
		t.Errorf("poll should still accept edits: %v", err)
	}
}

func TestVoteAndWithdrawUpdateResults(t *testing.T) {
	p, fake := newTestPoll(t)
	if err := p.UpdateOption("👍", "yes"); err != nil {
		t.Fatal(err)
	}
	if err := p.UpdateOption("👎", "no"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.OpenVoting(fake); err != nil {
		t.Fatal(err)
	}
	p.SetStage(models.StageRunning)

	if err := p.Vote("u1", "👍"); err != nil {
		t.Fatal(err)
	}
	// Voting twice leaves one entry (last write wins)
	if err := p.Vote("u1", "👍"); err != nil {
		t.Fatal(err)
	}
	if p.Ledger().Len() != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", p.Ledger().Len())
	}

	if !fake.ContainsLive(testutil.ResultsChannel, "Total Votes: 1") {
		t.Error("results message not updated after vote")
	}

	if err := p.Vote("u1", "🤷"); !errors.Is(err, ErrUnknownToken) {
		t.Errorf("expected ErrUnknownToken, got %v", err)
	}

	if err := p.Withdraw("u1"); err != nil {
		t.Fatal(err)
	}
	if p.Ledger().Len() != 0 {
		t.Errorf("expected empty ledger after withdraw, got %d", p.Ledger().Len())
	}
	// Withdraw with no prior vote is a no-op that still re-renders
	if err := p.Withdraw("u1"); err != nil {
		t.Fatal(err)
	}
	if !fake.ContainsLive(testutil.ResultsChannel, "Total Votes: 0") {
		t.Error("results message not updated after withdraw")
	}
}

func TestFinalizeTearsDownVotingChannel(t *testing.T) {
	p, fake := newTestPoll(t)
	if err := p.UpdateOption("👍", "yes"); err != nil {
		t.Fatal(err)
	}
	channel, err := p.OpenVoting(fake)
	if err != nil {
		t.Fatal(err)
	}
	p.SetStage(models.StageRunning)
	if err := p.Vote("u1", "👍"); err != nil {
		t.Fatal(err)
	}

	if err := p.Finalize(fake); err != nil {
		t.Fatal(err)
	}

	if len(fake.DeletedChannels) != 1 || fake.DeletedChannels[0] != channel {
		t.Errorf("expected voting channel removed, got %v", fake.DeletedChannels)
	}
	if !fake.ContainsLive(testutil.ResultsChannel, "Total Votes: 1") {
		t.Error("final tally missing from results channel")
	}
	// Preview is gone from the management channel; only the footer remains
	for _, text := range fake.LiveIn(testutil.ManagementChannel) {
		if strings.Contains(text, "POLL OPTIONS") {
			t.Error("preview should be deleted after finalize")
		}
	}
}

func TestTeardownToleratesMissingSurfaces(t *testing.T) {
	p, fake := newTestPoll(t)

	// Never started: no results message, no voting channel
	if err := p.Teardown(fake, "Poll was deleted manually"); err != nil {
		t.Fatalf("teardown of a draft must not fail: %v", err)
	}
	// Second teardown: everything already gone
	if err := p.Teardown(fake, "Poll was deleted manually"); err != nil {
		t.Fatalf("repeated teardown must be a no-op: %v", err)
	}
	if len(fake.DeletedChannels) != 0 {
		t.Errorf("no channels should be deleted, got %v", fake.DeletedChannels)
	}
}
