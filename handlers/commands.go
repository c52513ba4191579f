// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/apella/auth"
	"github.com/danielhkuo/apella/cliparse"
	"github.com/danielhkuo/apella/metrics"
	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/platform"
	"github.com/danielhkuo/apella/poll"
	"github.com/danielhkuo/apella/registry"
)

var ErrGuildNotReady = errors.New("guild has not been provisioned yet")

type CommandHandler struct {
	regs *registry.Set
	msgr platform.Messenger
	prov platform.Provisioner
	dir  platform.Directory
	cfg  cliparse.Config
}

func NewCommandHandler(regs *registry.Set, msgr platform.Messenger, prov platform.Provisioner, dir platform.Directory, cfg cliparse.Config) *CommandHandler {
	return &CommandHandler{regs: regs, msgr: msgr, prov: prov, dir: dir, cfg: cfg}
}

// Create handles "create": a new poll in the creating stage with a live
// preview in the management channel.
func (h *CommandHandler) Create(cmd models.Command) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	// Re-roll on id collision within this guild's poll set
	id := auth.GeneratePollID()
	for reg.HasID(id) {
		id = auth.GeneratePollID()
	}

	p, err := poll.New(id, cmd.GuildID, h.msgr, h.dir, reg.Surfaces, h.cfg.Prefix)
	if err != nil {
		return err
	}
	reg.Add(p)

	metrics.PollsCreated.Inc()
	slog.Info("poll created", "poll_id", id, "guild_id", cmd.GuildID, "author_id", cmd.AuthorID)
	return nil
}

// Title handles "title [pollId] <text>" against the creating stage.
func (h *CommandHandler) Title(cmd models.Command) error {
	return h.editDraft(cmd, func(p *poll.Poll, text string) error {
		if text == "" {
			return h.usage(cmd, "title My Snazzy New Title")
		}
		return p.Update(text, "")
	})
}

// Body handles "body [pollId] <text>" against the creating stage.
func (h *CommandHandler) Body(cmd models.Command) error {
	return h.editDraft(cmd, func(p *poll.Poll, text string) error {
		if text == "" {
			return h.usage(cmd, "body A longer description of the decision at hand")
		}
		return p.Update("", text)
	})
}

// Option handles "option [pollId] <token> [description...]". Supplying
// an existing token with no description removes that option.
func (h *CommandHandler) Option(cmd models.Command) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	p, args, err := reg.ResolveTarget(models.StageCreating, cmd.Args)
	if err != nil {
		return h.noPollReply(cmd, models.StageCreating)
	}
	if len(args) == 0 {
		return h.usage(cmd, "option :thumbsup: This means you are voting 'yes'")
	}
	return p.UpdateOption(args[0], strings.Join(args[1:], " "))
}

// Start handles "start [pollId]": provisions the voting channel, then
// moves the poll to running and binds the channel for vote routing.
func (h *CommandHandler) Start(cmd models.Command) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	p, _, err := reg.ResolveTarget(models.StageCreating, cmd.Args)
	if err != nil {
		return h.noPollReply(cmd, models.StageCreating)
	}

	channel, err := p.OpenVoting(h.prov)
	if err != nil {
		if errors.Is(err, poll.ErrNoOptions) {
			return h.notice(cmd, "this poll has no options yet - add at least one with `"+h.cfg.Prefix+"option` before starting it")
		}
		return err
	}
	if err := reg.Transition(p, models.StageCreating, models.StageRunning); err != nil {
		return err
	}
	reg.BindChannel(channel, p)

	metrics.PollsStarted.Inc()
	slog.Info("poll started", "poll_id", p.ID, "guild_id", cmd.GuildID, "voting_channel", string(channel))
	return nil
}

// End handles "end [pollId]": publishes the final tally, tears the
// voting channel down, and moves the poll to ended.
func (h *CommandHandler) End(cmd models.Command) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	p, _, err := reg.ResolveTarget(models.StageRunning, cmd.Args)
	if err != nil {
		return h.noPollReply(cmd, models.StageRunning)
	}

	channel := p.VotingChannel()
	if err := p.Finalize(h.prov); err != nil {
		return err
	}
	reg.UnbindChannel(channel)
	if err := reg.Transition(p, models.StageRunning, models.StageEnded); err != nil {
		return err
	}

	metrics.PollsEnded.Inc()
	slog.Info("poll ended", "poll_id", p.ID, "guild_id", cmd.GuildID, "total_votes", p.Ledger().Len())
	return nil
}

// Delete handles "delete <pollId>": removes the poll from any stage and
// tears down every surface it owns.
func (h *CommandHandler) Delete(cmd models.Command) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	id := cmd.Arg(0)
	if id == "" {
		return h.usage(cmd, "delete <pollId>")
	}
	p, ok := reg.FindAny(id)
	if !ok {
		return h.notice(cmd, "no poll with id `"+id+"` exists in this server")
	}

	if err := p.Teardown(h.prov, "Poll was deleted manually"); err != nil {
		slog.Warn("poll teardown left surfaces behind", "poll_id", p.ID, "error", err)
	}
	reg.Remove(p)

	metrics.PollsDeleted.Inc()
	slog.Info("poll deleted", "poll_id", p.ID, "guild_id", cmd.GuildID, "author_id", cmd.AuthorID)
	return nil
}

// Vote handles "vote <token>" inside a voting channel. Valid and
// invalid votes both delete the originating message after a short delay
// and re-render the live results.
func (h *CommandHandler) Vote(cmd models.Command) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	p, ok := reg.RouteByChannel(platform.ChannelRef(cmd.ChannelID))
	if !ok {
		return h.notice(cmd, "vote commands only work inside a voting channel")
	}

	origin := h.origin(cmd)
	if err := p.Vote(cmd.AuthorID, cmd.Arg(0)); err != nil {
		if !errors.Is(err, poll.ErrUnknownToken) {
			return err
		}
		metrics.VotesInvalid.Inc()
		reply, rerr := h.msgr.Reply(origin, "invalid option, try copy/pasting the command directly above. Deleting in 10 secs")
		if rerr == nil {
			h.msgr.DeleteAfter(reply, poll.NoticeTTL, "invalid vote response")
		}
		h.msgr.DeleteAfter(origin, poll.NoticeTTL, "invalid vote")
		return p.RefreshResults()
	}

	metrics.VotesRecorded.Inc()
	ack, aerr := h.msgr.Reply(origin, ":ballot_box: vote recorded. Deleting in 10 secs")
	if aerr == nil {
		h.msgr.DeleteAfter(ack, poll.NoticeTTL, "vote acknowledgement")
	}
	h.msgr.DeleteAfter(origin, poll.NoticeTTL, "vote tallied")
	slog.Info("vote recorded", "poll_id", p.ID, "guild_id", cmd.GuildID, "voter_id", cmd.AuthorID)
	return nil
}

// Withdraw handles "withdraw" inside a voting channel. Withdrawing with
// no prior vote is a silent no-op.
func (h *CommandHandler) Withdraw(cmd models.Command) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	p, ok := reg.RouteByChannel(platform.ChannelRef(cmd.ChannelID))
	if !ok {
		return h.notice(cmd, "withdraw only works inside a voting channel")
	}

	if err := p.Withdraw(cmd.AuthorID); err != nil {
		return err
	}
	metrics.VotesWithdrawn.Inc()
	h.msgr.DeleteAfter(h.origin(cmd), poll.NoticeTTL, "vote removed")
	slog.Info("vote withdrawn", "poll_id", p.ID, "guild_id", cmd.GuildID, "voter_id", cmd.AuthorID)
	return nil
}

// Help handles "help" with the full command reference.
func (h *CommandHandler) Help(cmd models.Command) error {
	_, err := h.msgr.Reply(h.origin(cmd), poll.HelpText(h.cfg.Prefix))
	return err
}

// ResetAll handles "resetall": tears down every poll in the guild.
func (h *CommandHandler) ResetAll(cmd models.Command) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	polls := reg.All()
	for _, p := range polls {
		if err := p.Teardown(h.prov, "Poll reset"); err != nil {
			slog.Warn("poll teardown left surfaces behind", "poll_id", p.ID, "error", err)
		}
		metrics.PollsDeleted.Inc()
	}
	reg.Reset()

	slog.Info("all polls reset", "guild_id", cmd.GuildID, "count", len(polls), "author_id", cmd.AuthorID)
	return nil
}

// editDraft resolves the target draft and hands the remaining argument
// text to edit. Shared by Title and Body.
func (h *CommandHandler) editDraft(cmd models.Command, edit func(p *poll.Poll, text string) error) error {
	reg, err := h.registry(cmd)
	if err != nil {
		return err
	}
	reg.Lock()
	defer reg.Unlock()

	p, args, err := reg.ResolveTarget(models.StageCreating, cmd.Args)
	if err != nil {
		return h.noPollReply(cmd, models.StageCreating)
	}
	return edit(p, strings.Join(args, " "))
}

func (h *CommandHandler) registry(cmd models.Command) (*registry.Registry, error) {
	reg, ok := h.regs.Get(cmd.GuildID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGuildNotReady, cmd.GuildID)
	}
	return reg, nil
}

func (h *CommandHandler) origin(cmd models.Command) platform.MessageRef {
	return platform.MessageRef{Channel: platform.ChannelRef(cmd.ChannelID), ID: cmd.MessageID}
}

// notice sends a corrective reply to the author. User mistakes are
// handled here and never bubble up as command failures.
func (h *CommandHandler) notice(cmd models.Command, text string) error {
	if _, err := h.msgr.Reply(h.origin(cmd), text); err != nil {
		return fmt.Errorf("failed to send notice: %w", err)
	}
	return nil
}

func (h *CommandHandler) usage(cmd models.Command, example string) error {
	return h.notice(cmd, "usage: `"+h.cfg.Prefix+example+"`")
}

func (h *CommandHandler) noPollReply(cmd models.Command, stage string) error {
	switch stage {
	case models.StageRunning:
		return h.notice(cmd, "no poll is currently running - start one with `"+h.cfg.Prefix+"start`")
	default:
		return h.notice(cmd, "no poll is being drafted - create one with `"+h.cfg.Prefix+"create`")
	}
}
