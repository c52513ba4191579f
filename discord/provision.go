// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/platform"
)

// EnsureGuild makes sure the guild carries everything the bot needs:
// the voter and poll-manager roles, the polling category, and the
// management and results channels with their permission sets. Existing
// objects are reused by name; missing ones are created. Permissions on
// the two standing channels are re-applied on every startup so manual
// drift heals itself.
func (a *Adapter) EnsureGuild(guildID string) (platform.Surfaces, error) {
	voterID, err := a.ensureRole(guildID, models.RoleVoter)
	if err != nil {
		return platform.Surfaces{}, err
	}
	managerID, err := a.ensureRole(guildID, models.RolePollManager)
	if err != nil {
		return platform.Surfaces{}, err
	}

	categoryID, err := a.ensureCategory(guildID, models.CategoryName)
	if err != nil {
		return platform.Surfaces{}, err
	}

	a.setGuildInfo(guildID, guildInfo{
		voterRoleID:   voterID,
		managerRoleID: managerID,
		categoryID:    categoryID,
	})

	management, err := a.ensureChannel(guildID, categoryID, models.ManagementChannel,
		"Welcome to the poll-management channel, use `!help` for more information :)",
		[]*discordgo.PermissionOverwrite{
			{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: permAllText},
			{ID: managerID, Type: discordgo.PermissionOverwriteTypeRole, Allow: permAllText},
		})
	if err != nil {
		return platform.Surfaces{}, err
	}

	results, err := a.ensureChannel(guildID, categoryID, models.ResultsChannel,
		"Channel to display the results from our latest polls",
		[]*discordgo.PermissionOverwrite{
			{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Allow: permReadOnly, Deny: permAllText &^ permReadOnly},
			{ID: managerID, Type: discordgo.PermissionOverwriteTypeRole, Allow: permAllText},
		})
	if err != nil {
		return platform.Surfaces{}, err
	}

	slog.Info("guild provisioned", "guild_id", guildID,
		"management_channel", management, "results_channel", results)

	return platform.Surfaces{
		Category:   platform.ChannelRef(categoryID),
		Management: platform.ChannelRef(management),
		Results:    platform.ChannelRef(results),
	}, nil
}

// ensureRole finds a role by name or creates it.
func (a *Adapter) ensureRole(guildID, name string) (string, error) {
	roles, err := a.session.GuildRoles(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to list roles: %w", err)
	}
	for _, role := range roles {
		if role.Name == name {
			return role.ID, nil
		}
	}

	slog.Info("creating role", "guild_id", guildID, "role", name)
	role, err := a.session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name})
	if err != nil {
		return "", fmt.Errorf("failed to create role %s: %w", name, err)
	}
	return role.ID, nil
}

// ensureCategory finds the polling category by name or creates it with
// @everyone locked out.
func (a *Adapter) ensureCategory(guildID, name string) (string, error) {
	channels, err := a.session.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to list channels: %w", err)
	}
	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildCategory && channel.Name == name {
			return channel.ID, nil
		}
	}

	slog.Info("creating category", "guild_id", guildID, "category", name)
	category, err := a.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildCategory,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: permAllText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create category %s: %w", name, err)
	}
	return category.ID, nil
}

// ensureChannel finds a text channel under the category by name or
// creates it, then enforces the supplied permission overwrites either way.
func (a *Adapter) ensureChannel(guildID, parentID, name, topic string, overwrites []*discordgo.PermissionOverwrite) (string, error) {
	channels, err := a.session.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to list channels: %w", err)
	}

	var channelID string
	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildText && channel.Name == name {
			channelID = channel.ID
			break
		}
	}

	if channelID == "" {
		slog.Info("creating channel", "guild_id", guildID, "channel", name)
		channel, err := a.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name:                 name,
			Type:                 discordgo.ChannelTypeGuildText,
			Topic:                topic,
			ParentID:             parentID,
			PermissionOverwrites: overwrites,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create channel %s: %w", name, err)
		}
		return channel.ID, nil
	}

	if _, err := a.session.ChannelEditComplex(channelID, &discordgo.ChannelEdit{
		PermissionOverwrites: overwrites,
	}); err != nil {
		return "", fmt.Errorf("failed to update permissions on %s: %w", name, err)
	}
	return channelID, nil
}
