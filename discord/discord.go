// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/apella/platform"
)

// Permission bitmasks applied to provisioned channels. Numeric values
// match the Discord permission flags for "all text channel actions",
// "read + send" (voting), and "read only".
const (
	permAllText  = 523328
	permVoting   = 330752
	permReadOnly = 66624
)

// guildInfo caches the provisioned role and category ids for one guild.
type guildInfo struct {
	voterRoleID   string
	managerRoleID string
	categoryID    string
}

// Adapter implements platform.Messenger, platform.Provisioner, and
// platform.Directory on top of a discordgo session.
type Adapter struct {
	session *discordgo.Session

	mu     sync.Mutex
	guilds map[string]guildInfo
}

func NewAdapter(session *discordgo.Session) *Adapter {
	return &Adapter{session: session, guilds: make(map[string]guildInfo)}
}

// Send posts text into a channel and returns a handle to the message.
func (a *Adapter) Send(channel platform.ChannelRef, text string) (platform.MessageRef, error) {
	msg, err := a.session.ChannelMessageSend(string(channel), text)
	if err != nil {
		return platform.MessageRef{}, fmt.Errorf("failed to send message: %w", err)
	}
	return platform.MessageRef{Channel: channel, ID: msg.ID}, nil
}

// Edit replaces the content of a bot-owned message.
func (a *Adapter) Edit(msg platform.MessageRef, text string) error {
	if _, err := a.session.ChannelMessageEdit(string(msg.Channel), msg.ID, text); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// Delete removes a message. A target that is already gone is a no-op.
func (a *Adapter) Delete(msg platform.MessageRef, reason string) error {
	err := a.session.ChannelMessageDelete(string(msg.Channel), msg.ID)
	if err != nil && !isGone(err) {
		return fmt.Errorf("failed to delete message (%s): %w", reason, err)
	}
	return nil
}

// DeleteAfter schedules a one-shot delayed delete. Failures are logged,
// not surfaced; by then the command that asked for cleanup is long done.
func (a *Adapter) DeleteAfter(msg platform.MessageRef, delay time.Duration, reason string) (cancel func()) {
	timer := time.AfterFunc(delay, func() {
		if err := a.Delete(msg, reason); err != nil {
			slog.Warn("delayed message delete failed", "reason", reason, "error", err)
		}
	})
	return func() { timer.Stop() }
}

// Reply answers a specific message in its channel.
func (a *Adapter) Reply(to platform.MessageRef, text string) (platform.MessageRef, error) {
	msg, err := a.session.ChannelMessageSendReply(string(to.Channel), text, &discordgo.MessageReference{
		MessageID: to.ID,
		ChannelID: string(to.Channel),
	})
	if err != nil {
		return platform.MessageRef{}, fmt.Errorf("failed to send reply: %w", err)
	}
	return platform.MessageRef{Channel: to.Channel, ID: msg.ID}, nil
}

// CreateVotingChannel provisions the dedicated channel for a running
// poll under the guild's polling category: @everyone locked out, the
// poll-manager role in full control, voters able to read and vote.
func (a *Adapter) CreateVotingChannel(guildID, name string) (platform.ChannelRef, error) {
	info, ok := a.guildInfo(guildID)
	if !ok {
		return "", fmt.Errorf("guild %s has not been provisioned", guildID)
	}

	channel, err := a.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: info.categoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: permAllText},
			{ID: info.managerRoleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: permAllText},
			{ID: info.voterRoleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: permVoting, Deny: permAllText &^ permVoting},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create voting channel: %w", err)
	}
	return platform.ChannelRef(channel.ID), nil
}

// DeleteChannel removes a channel. Already-deleted channels are no-ops.
func (a *Adapter) DeleteChannel(guildID string, channel platform.ChannelRef, reason string) error {
	_, err := a.session.ChannelDelete(string(channel))
	if err != nil && !isGone(err) {
		return fmt.Errorf("failed to delete channel (%s): %w", reason, err)
	}
	return nil
}

// DisplayName resolves a member's server nickname, falling back to the
// account name, then to the raw id when the member cannot be fetched.
func (a *Adapter) DisplayName(guildID, userID string) string {
	member, err := a.session.State.Member(guildID, userID)
	if err != nil {
		member, err = a.session.GuildMember(guildID, userID)
		if err != nil {
			slog.Warn("failed to resolve member", "guild_id", guildID, "user_id", userID, "error", err)
			return userID
		}
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func (a *Adapter) guildInfo(guildID string) (guildInfo, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	info, ok := a.guilds[guildID]
	return info, ok
}

func (a *Adapter) setGuildInfo(guildID string, info guildInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.guilds[guildID] = info
}

// isGone reports whether the error means the target no longer exists.
func isGone(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	code := restErr.Message.Code
	return code == discordgo.ErrCodeUnknownMessage || code == discordgo.ErrCodeUnknownChannel
}
