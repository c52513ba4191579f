// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles poll id generation and role-based authorization.

# Poll IDs

GeneratePollID derives a 6-character id from a UUID v4 — short enough
to retype in chat, random enough to avoid collisions within a guild's
active poll set. Callers re-roll against the registry on collision.

# Authorization

Management commands require the poll-manager role; RequirePollManager
checks a member's role names and returns ErrNotPollManager otherwise.
Voting eligibility is enforced by channel permissions on the voting
channel itself, not here.
*/
package auth
