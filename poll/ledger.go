// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

// Ledger is the authoritative voter → option-token mapping for one poll.
// Each voter holds at most one entry; recording again overwrites the
// choice but keeps the voter's original position, so supporter lists
// stay in first-vote order across vote changes.
type Ledger struct {
	order []string          // voter ids, first-vote order
	votes map[string]string // voter id -> option token
}

func NewLedger() *Ledger {
	return &Ledger{votes: make(map[string]string)}
}

// Record stores the voter's choice, last write wins.
func (l *Ledger) Record(voterID, token string) {
	if _, ok := l.votes[voterID]; !ok {
		l.order = append(l.order, voterID)
	}
	l.votes[voterID] = token
}

// Withdraw removes the voter's entry. Removing an absent voter is a
// no-op; the return value reports whether anything changed.
func (l *Ledger) Withdraw(voterID string) bool {
	if _, ok := l.votes[voterID]; !ok {
		return false
	}
	delete(l.votes, voterID)
	for i, id := range l.order {
		if id == voterID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the voter's current choice.
func (l *Ledger) Get(voterID string) (string, bool) {
	token, ok := l.votes[voterID]
	return token, ok
}

// Len is the number of distinct voters with a recorded choice.
func (l *Ledger) Len() int {
	return len(l.votes)
}

// Each visits every entry in first-vote order.
func (l *Ledger) Each(fn func(voterID, token string)) {
	for _, id := range l.order {
		fn(id, l.votes[id])
	}
}
