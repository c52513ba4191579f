// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/platform"
)

var (
	ErrNoOptions    = errors.New("poll has no options")
	ErrWrongStage   = errors.New("operation not valid in current stage")
	ErrUnknownToken = errors.New("unknown option token")
)

// How long self-destructing notices live before deletion
const (
	FooterTTL = 20 * time.Second
	NoticeTTL = 10 * time.Second
)

// Poll is one governed decision: title, body, ordered options, a vote
// ledger, a lifecycle stage, and the output surfaces it keeps updated.
// All mutation is serialized by the owning registry; Poll itself holds
// no lock.
type Poll struct {
	ID      string
	GuildID string

	title   string
	body    string
	options []models.Option // insertion order
	ledger  *Ledger

	stage     string
	startedAt time.Time

	// Output surfaces. Zero refs mean "not created yet" and every
	// teardown path treats them as already gone.
	preview       platform.MessageRef
	results       platform.MessageRef
	votingChannel platform.ChannelRef

	msgr     platform.Messenger
	dir      platform.Directory
	surfaces platform.Surfaces
	prefix   string
}

// New creates a poll in the creating stage and publishes its preview and
// a self-destructing instruction footer to the management channel.
func New(id, guildID string, msgr platform.Messenger, dir platform.Directory, surfaces platform.Surfaces, prefix string) (*Poll, error) {
	p := &Poll{
		ID:       id,
		GuildID:  guildID,
		title:    models.DefaultTitle,
		body:     models.DefaultBody,
		ledger:   NewLedger(),
		stage:    models.StageCreating,
		msgr:     msgr,
		dir:      dir,
		surfaces: surfaces,
		prefix:   prefix,
	}

	preview, err := msgr.Send(surfaces.Management, p.PromptText())
	if err != nil {
		return nil, fmt.Errorf("failed to publish poll preview: %w", err)
	}
	p.preview = preview

	footer, err := msgr.Send(surfaces.Management, managementFooter(prefix))
	if err != nil {
		// The preview is up; a missing footer is cosmetic
		slog.Warn("failed to send management footer", "poll_id", id, "error", err)
		return p, nil
	}
	msgr.DeleteAfter(footer, FooterTTL, "management footer expired")

	return p, nil
}

func (p *Poll) Title() string        { return p.title }
func (p *Poll) Body() string         { return p.body }
func (p *Poll) Stage() string        { return p.stage }
func (p *Poll) StartedAt() time.Time { return p.startedAt }
func (p *Poll) Ledger() *Ledger      { return p.ledger }

func (p *Poll) VotingChannel() platform.ChannelRef { return p.votingChannel }

// SetStage records a lifecycle move. Callers go through
// registry.Transition so the stage queues and this field always agree.
func (p *Poll) SetStage(stage string) { p.stage = stage }

// Options returns the option set in insertion order.
func (p *Poll) Options() []models.Option {
	out := make([]models.Option, len(p.options))
	copy(out, p.options)
	return out
}

// Option looks up an option by token.
func (p *Poll) Option(token string) (models.Option, bool) {
	for _, opt := range p.options {
		if opt.Token == token {
			return opt, true
		}
	}
	return models.Option{}, false
}

// Update shallow-merges the supplied fields; empty strings leave the
// current value untouched. Only valid while creating.
func (p *Poll) Update(title, body string) error {
	if p.stage != models.StageCreating {
		return ErrWrongStage
	}
	if title != "" {
		p.title = title
	}
	if body != "" {
		p.body = body
	}
	return p.refreshPreview()
}

// UpdateOption creates or replaces the option for token. Re-invoking
// with an empty body for an existing token deletes the option instead.
// Only valid while creating; options freeze once the poll starts.
func (p *Poll) UpdateOption(token, body string) error {
	if p.stage != models.StageCreating {
		return ErrWrongStage
	}
	if _, exists := p.Option(token); exists && body == "" {
		for i, opt := range p.options {
			if opt.Token == token {
				p.options = append(p.options[:i], p.options[i+1:]...)
				break
			}
		}
		return p.refreshPreview()
	}
	for i, opt := range p.options {
		if opt.Token == token {
			p.options[i].Body = body
			return p.refreshPreview()
		}
	}
	p.options = append(p.options, models.Option{Token: token, Body: body})
	return p.refreshPreview()
}

// Snapshot recomputes the tally from scratch.
func (p *Poll) Snapshot() Snapshot {
	return Tally(p.options, p.ledger)
}

// Vote records the voter's choice and re-renders the live results.
// An unknown token returns ErrUnknownToken without touching the ledger.
func (p *Poll) Vote(voterID, token string) error {
	if _, ok := p.Option(token); !ok {
		return ErrUnknownToken
	}
	p.ledger.Record(voterID, token)
	return p.RefreshResults()
}

// Withdraw removes any existing entry for the voter, unconditionally,
// and re-renders results. Withdrawing with no prior vote is a no-op.
func (p *Poll) Withdraw(voterID string) error {
	p.ledger.Withdraw(voterID)
	return p.RefreshResults()
}

// OpenVoting provisions the dedicated voting channel and publishes the
// prompt and voting instructions into it. The caller transitions the
// poll to running only after this succeeds, so a failed channel
// creation leaves the poll editable in the creating stage.
func (p *Poll) OpenVoting(prov platform.Provisioner) (platform.ChannelRef, error) {
	if p.stage != models.StageCreating {
		return "", ErrWrongStage
	}
	if len(p.options) == 0 {
		return "", ErrNoOptions
	}

	channel, err := prov.CreateVotingChannel(p.GuildID, p.title)
	if err != nil {
		return "", fmt.Errorf("failed to create voting channel: %w", err)
	}
	p.votingChannel = channel
	p.startedAt = time.Now()

	if _, err := p.msgr.Send(channel, p.PromptText()); err != nil {
		return channel, fmt.Errorf("failed to publish prompt: %w", err)
	}
	for _, line := range votingInstructions(p.prefix) {
		if _, err := p.msgr.Send(channel, line); err != nil {
			return channel, fmt.Errorf("failed to publish voting instructions: %w", err)
		}
	}
	return channel, nil
}

// Finalize publishes the final tally and tears the voting channel down.
// The caller transitions running → ended only after this succeeds.
func (p *Poll) Finalize(prov platform.Provisioner) error {
	if p.stage != models.StageRunning {
		return ErrWrongStage
	}
	if err := p.RefreshResults(); err != nil {
		return fmt.Errorf("failed to publish final tally: %w", err)
	}

	reason := p.ID + " - poll has ended"
	if p.votingChannel != "" {
		if err := prov.DeleteChannel(p.GuildID, p.votingChannel, reason); err != nil {
			return fmt.Errorf("failed to remove voting channel: %w", err)
		}
		p.votingChannel = ""
	}
	if !p.preview.IsZero() {
		if err := p.msgr.Delete(p.preview, reason); err != nil {
			// Final tally is out and voting is closed; a stuck preview
			// is the accepted partial-teardown failure mode
			slog.Warn("failed to delete poll preview", "poll_id", p.ID, "error", err)
		}
		p.preview = platform.MessageRef{}
	}
	return nil
}

// Teardown removes every output surface the poll owns. Surfaces that
// were never created, or are already gone, are skipped; the first real
// platform failure is reported after all surfaces have been attempted.
func (p *Poll) Teardown(prov platform.Provisioner, reason string) error {
	var firstErr error
	if !p.preview.IsZero() {
		if err := p.msgr.Delete(p.preview, reason); err != nil && firstErr == nil {
			firstErr = err
		}
		p.preview = platform.MessageRef{}
	}
	if !p.results.IsZero() {
		if err := p.msgr.Delete(p.results, reason); err != nil && firstErr == nil {
			firstErr = err
		}
		p.results = platform.MessageRef{}
	}
	if p.votingChannel != "" {
		if err := prov.DeleteChannel(p.GuildID, p.votingChannel, reason); err != nil && firstErr == nil {
			firstErr = err
		}
		p.votingChannel = ""
	}
	return firstErr
}

// refreshPreview pushes the current prompt into the preview message.
func (p *Poll) refreshPreview() error {
	if p.preview.IsZero() {
		return nil
	}
	if err := p.msgr.Edit(p.preview, p.PromptText()); err != nil {
		return fmt.Errorf("failed to update poll preview: %w", err)
	}
	return nil
}

// RefreshResults creates or edits the results message in the guild's
// results channel with a freshly computed tally.
func (p *Poll) RefreshResults() error {
	text := p.ResultsText()
	if p.results.IsZero() {
		msg, err := p.msgr.Send(p.surfaces.Results, text)
		if err != nil {
			return fmt.Errorf("failed to publish results: %w", err)
		}
		p.results = msg
		return nil
	}
	if err := p.msgr.Edit(p.results, text); err != nil {
		return fmt.Errorf("failed to update results: %w", err)
	}
	return nil
}
