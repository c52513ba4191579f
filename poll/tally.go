// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/apella/models"
)

// Snapshot is the derived result state for one poll: per-option counts
// and supporter lists, the total vote count, and the winning threshold.
// It is recomputed from scratch on every ledger mutation.
type Snapshot struct {
	Counts       map[string]int      // option token -> vote count
	Supporters   map[string][]string // option token -> voter ids, first-vote order
	TotalVotes   int
	WinningTotal int // max count across options; every option at this count is winning
}

// Winning reports whether the option is (tied for) first place. With an
// empty ledger nothing is winning.
func (s Snapshot) Winning(token string) bool {
	return s.TotalVotes > 0 && s.Counts[token] == s.WinningTotal
}

// Percent formats the option's share of the total vote to two decimal
// places. An empty ledger renders as 0.00% rather than dividing by zero.
func (s Snapshot) Percent(token string) string {
	if s.TotalVotes == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(s.Counts[token])/float64(s.TotalVotes)*100)
}

// Tally computes a Snapshot from an option set and a ledger.
//
// Every current option appears with a zero count even when nobody picked
// it. Ledger entries for tokens no longer in the option set are excluded
// entirely, so the per-option counts always sum to TotalVotes; in the
// intended flow such entries cannot exist because options freeze when a
// poll starts. Complexity is O(|ledger| + |options|).
func Tally(options []models.Option, ledger *Ledger) Snapshot {
	snap := Snapshot{
		Counts:     make(map[string]int, len(options)),
		Supporters: make(map[string][]string, len(options)),
	}
	for _, opt := range options {
		snap.Counts[opt.Token] = 0
		snap.Supporters[opt.Token] = nil
	}

	ledger.Each(func(voterID, token string) {
		if _, ok := snap.Counts[token]; !ok {
			return
		}
		snap.Counts[token]++
		snap.Supporters[token] = append(snap.Supporters[token], voterID)
		snap.TotalVotes++
		if snap.Counts[token] > snap.WinningTotal {
			snap.WinningTotal = snap.Counts[token]
		}
	})

	return snap
}

// Ranked returns the option set sorted descending by vote count. Ties
// keep the original option-insertion order so results render
// deterministically.
func (s Snapshot) Ranked(options []models.Option) []models.Option {
	ranked := make([]models.Option, len(options))
	copy(ranked, options)
	sort.SliceStable(ranked, func(i, j int) bool {
		return s.Counts[ranked[i].Token] > s.Counts[ranked[j].Token]
	})
	return ranked
}
