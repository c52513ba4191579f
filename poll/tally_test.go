// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"reflect"
	"testing"

	"github.com/danielhkuo/apella/models"
)

func options(tokens ...string) []models.Option {
	out := make([]models.Option, len(tokens))
	for i, tok := range tokens {
		out[i] = models.Option{Token: tok, Body: "body of " + tok}
	}
	return out
}

func TestTallyCountsAndTotals(t *testing.T) {
	opts := options("👍", "👎")
	l := NewLedger()
	l.Record("u1", "👍")
	l.Record("u2", "👍")
	l.Record("u3", "👎")

	snap := Tally(opts, l)

	if snap.TotalVotes != 3 {
		t.Errorf("expected total 3, got %d", snap.TotalVotes)
	}
	sum := 0
	for _, c := range snap.Counts {
		sum += c
	}
	if sum != l.Len() {
		t.Errorf("counts sum %d != ledger size %d", sum, l.Len())
	}
	if snap.Counts["👍"] != 2 || snap.Counts["👎"] != 1 {
		t.Errorf("unexpected counts: %v", snap.Counts)
	}
	if snap.WinningTotal != 2 {
		t.Errorf("expected winning total 2, got %d", snap.WinningTotal)
	}
	if !snap.Winning("👍") || snap.Winning("👎") {
		t.Errorf("expected 👍 winning and 👎 not")
	}
	if got := snap.Percent("👍"); got != "66.67%" {
		t.Errorf("expected 66.67%%, got %s", got)
	}
	if got := snap.Percent("👎"); got != "33.33%" {
		t.Errorf("expected 33.33%%, got %s", got)
	}
}

func TestTallyIncludesZeroVoteOptions(t *testing.T) {
	opts := options("a", "b", "c")
	l := NewLedger()
	l.Record("u1", "a")

	snap := Tally(opts, l)

	for _, opt := range opts {
		if _, ok := snap.Counts[opt.Token]; !ok {
			t.Errorf("option %s missing from counts", opt.Token)
		}
	}
	if snap.Counts["b"] != 0 || snap.Counts["c"] != 0 {
		t.Errorf("expected zero counts for unvoted options: %v", snap.Counts)
	}
}

func TestTallyTies(t *testing.T) {
	// Counts {A:3, B:3, C:1}: both A and B are winning
	opts := options("A", "B", "C")
	l := NewLedger()
	for i, vote := range []string{"A", "A", "A", "B", "B", "B", "C"} {
		l.Record(string(rune('a'+i)), vote)
	}

	snap := Tally(opts, l)

	if snap.WinningTotal != 3 {
		t.Errorf("expected winning total 3, got %d", snap.WinningTotal)
	}
	if !snap.Winning("A") || !snap.Winning("B") {
		t.Error("expected both A and B marked winning")
	}
	if snap.Winning("C") {
		t.Error("C must not be winning")
	}
}

func TestTallyEmptyLedger(t *testing.T) {
	snap := Tally(options("a", "b"), NewLedger())

	if snap.TotalVotes != 0 {
		t.Errorf("expected 0 total, got %d", snap.TotalVotes)
	}
	if snap.Winning("a") || snap.Winning("b") {
		t.Error("nothing should be winning with no votes")
	}
	// Division by zero must render 0.00%, never NaN
	if got := snap.Percent("a"); got != "0.00%" {
		t.Errorf("expected 0.00%%, got %s", got)
	}
}

func TestTallyExcludesStaleEntries(t *testing.T) {
	// A ledger entry for a token outside the option set must not count
	// anywhere, keeping sum(counts) == TotalVotes
	opts := options("a")
	l := NewLedger()
	l.Record("u1", "a")
	l.Record("u2", "gone")

	snap := Tally(opts, l)

	if snap.TotalVotes != 1 {
		t.Errorf("expected total 1, got %d", snap.TotalVotes)
	}
	sum := 0
	for _, c := range snap.Counts {
		sum += c
	}
	if sum != snap.TotalVotes {
		t.Errorf("counts sum %d != total %d", sum, snap.TotalVotes)
	}
	if _, ok := snap.Counts["gone"]; ok {
		t.Error("stale token leaked into counts")
	}
}

func TestTallySupporterOrder(t *testing.T) {
	opts := options("a")
	l := NewLedger()
	l.Record("u3", "a")
	l.Record("u1", "a")
	l.Record("u2", "a")

	snap := Tally(opts, l)

	if want := []string{"u3", "u1", "u2"}; !reflect.DeepEqual(snap.Supporters["a"], want) {
		t.Errorf("expected supporters %v, got %v", want, snap.Supporters["a"])
	}
}

func TestRankedOrder(t *testing.T) {
	// b has the most votes; a and c tie and must keep insertion order
	opts := options("a", "b", "c")
	l := NewLedger()
	l.Record("u1", "b")
	l.Record("u2", "b")
	l.Record("u3", "a")
	l.Record("u4", "c")

	ranked := Tally(opts, l).Ranked(opts)

	got := make([]string, len(ranked))
	for i, opt := range ranked {
		got[i] = opt.Token
	}
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected ranking %v, got %v", want, got)
	}
}
