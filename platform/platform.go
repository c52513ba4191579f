// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package platform

import "time"

// ChannelRef is an opaque platform channel identifier.
type ChannelRef string

// MessageRef identifies one message the bot owns and may later edit or
// delete. The zero value means "no message".
type MessageRef struct {
	Channel ChannelRef
	ID      string
}

// IsZero reports whether the ref points at nothing.
func (m MessageRef) IsZero() bool {
	return m.ID == ""
}

// Messenger sends, edits, and deletes messages on the chat platform.
//
// Delete and DeleteAfter must tolerate the target already being gone; a
// missing message is not an error. DeleteAfter schedules a one-shot
// deletion and returns a cancel func so tests never leak timers.
type Messenger interface {
	Send(channel ChannelRef, text string) (MessageRef, error)
	Edit(msg MessageRef, text string) error
	Delete(msg MessageRef, reason string) error
	DeleteAfter(msg MessageRef, delay time.Duration, reason string) (cancel func())
	Reply(to MessageRef, text string) (MessageRef, error)
}

// Provisioner creates and removes the dedicated voting channel for a
// running poll. Access rules are fixed: @everyone gets nothing, the
// poll-manager role gets full access, the voter role may only vote.
type Provisioner interface {
	CreateVotingChannel(guildID, name string) (ChannelRef, error)
	DeleteChannel(guildID string, channel ChannelRef, reason string) error
}

// Directory resolves member display names for supporter attribution.
// Implementations fall back to the raw user id when lookup fails.
type Directory interface {
	DisplayName(guildID, userID string) string
}

// Surfaces holds the per-guild channels provisioned at startup.
type Surfaces struct {
	Category   ChannelRef // parent category for voting channels
	Management ChannelRef // poll previews and manager commands
	Results    ChannelRef // live and final tallies
}
