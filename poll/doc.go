// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll implements the poll lifecycle engine and tally algorithm.

# Lifecycle

A poll moves through three stages:

	creating → running → ended

Creation publishes a live preview into the management channel. While
creating, the title, body, and option set are editable and every edit
re-renders the preview. Starting a poll provisions a dedicated voting
channel, freezes the option set, and publishes the prompt there. Ending
publishes the final tally and tears the voting channel down. A poll can
be deleted from any stage, which removes every surface it owns.

# Ledger

Ledger maps voter → chosen option, at most one entry per voter with
last-write-wins semantics. Withdrawing an absent voter is a no-op.

# Tally

Tally is a pure function over an option set and a ledger. It zero-fills
every option, scans the ledger once, and tracks the maximum count as
the winning threshold, so ties produce multiple winners rather than an
arbitrary pick. The tally is recomputed from scratch on every mutation;
ledgers are small and recompute avoids incremental-update bugs.

# Rendering

PromptText and ResultsText are deterministic renderings of poll state.
Percentages are formatted to two decimal places, and an empty ledger
renders "0.00%" and "No votes yet" instead of dividing by zero.
*/
package poll
