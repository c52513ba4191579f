// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/apella/cliparse"
	"github.com/danielhkuo/apella/handlers"
	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/registry"
	"github.com/danielhkuo/apella/router"
)

// Bot owns the Discord session and wires gateway events into the poll
// engine: guild provisioning on GuildCreate, command dispatch on
// MessageCreate.
type Bot struct {
	cfg     cliparse.Config
	session *discordgo.Session
	adapter *Adapter
	regs    *registry.Set
	router  *router.Router
}

func NewBot(cfg cliparse.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	adapter := NewAdapter(session)
	regs := registry.NewSet()
	h := handlers.NewCommandHandler(regs, adapter, adapter, adapter, cfg)

	bot := &Bot{
		cfg:     cfg,
		session: session,
		adapter: adapter,
		regs:    regs,
		router:  router.NewRouter(h, adapter, cfg),
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onGuildCreate)
	session.AddHandler(bot.onMessageCreate)

	return bot, nil
}

// Open connects to the gateway. Provisioning happens per guild as
// GuildCreate events arrive.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	return nil
}

// Close disconnects from the gateway. All poll state is in-memory and
// intentionally lost; governance sessions are ephemeral.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("logged in", "user", ready.User.Username, "guilds", len(ready.Guilds))
}

func (b *Bot) onGuildCreate(_ *discordgo.Session, event *discordgo.GuildCreate) {
	surfaces, err := b.adapter.EnsureGuild(event.ID)
	if err != nil {
		slog.Error("guild provisioning failed", "guild_id", event.ID, "error", err)
		return
	}
	b.regs.Put(event.ID, surfaces)
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, event *discordgo.MessageCreate) {
	if event.Author == nil || event.Author.Bot || event.GuildID == "" {
		return
	}
	verb, args, ok := router.Parse(event.Content, b.cfg.Prefix)
	if !ok {
		return
	}

	b.router.Dispatch(models.Command{
		Verb:        verb,
		Args:        args,
		Raw:         event.Content,
		AuthorID:    event.Author.ID,
		AuthorRoles: b.roleNames(event.GuildID, event.Member),
		ChannelID:   event.ChannelID,
		MessageID:   event.ID,
		GuildID:     event.GuildID,
	})
}

// roleNames maps the member's role ids to names via the state cache.
func (b *Bot) roleNames(guildID string, member *discordgo.Member) []string {
	if member == nil {
		return nil
	}
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		slog.Warn("guild missing from state cache", "guild_id", guildID, "error", err)
		return nil
	}
	byID := make(map[string]string, len(guild.Roles))
	for _, role := range guild.Roles {
		byID[role.ID] = role.Name
	}

	names := make([]string, 0, len(member.Roles))
	for _, id := range member.Roles {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
