// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the chat command handlers.

# Commands

Management (poll-manager role):

  - Create: new draft poll with a live preview
  - Title, Body: edit the draft (oldest draft by default, explicit id
    consumed when the first argument matches one)
  - Option: add, replace, or remove an option
  - Start: open voting in a dedicated channel
  - End: publish the final tally and close voting
  - Delete: remove a poll from any stage
  - ResetAll: remove every poll in the guild

Voting (inside a voting channel, routed by channel id):

  - Vote: record or change the author's vote
  - Withdraw: remove the author's vote

# Error Handling

User mistakes (unknown option token, missing poll, bad arguments) are
answered with corrective replies and do not count as command failures.
Platform errors propagate to the dispatcher, which logs them and tells
the invoking user the command failed. Every handler takes the guild
registry lock for the whole command, so two commands for the same guild
never interleave.
*/
package handlers
