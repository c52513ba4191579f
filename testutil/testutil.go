// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/platform"
)

// Well-known fixture ids shared across package tests
const (
	GuildID           = "guild-1"
	ManagementChannel = platform.ChannelRef("chan-management")
	ResultsChannel    = platform.ChannelRef("chan-results")
	CategoryChannel   = platform.ChannelRef("chan-category")
)

// Surfaces returns the standard fixture surfaces.
func Surfaces() platform.Surfaces {
	return platform.Surfaces{
		Category:   CategoryChannel,
		Management: ManagementChannel,
		Results:    ResultsChannel,
	}
}

// Message is one message recorded by the fake platform.
type Message struct {
	Ref     platform.MessageRef
	Text    string
	Deleted bool
	ReplyTo string // message id this was a reply to, if any
}

// ScheduledDelete records a DeleteAfter call without running a timer.
type ScheduledDelete struct {
	Ref       platform.MessageRef
	Delay     time.Duration
	Reason    string
	Cancelled bool
}

// Platform is an in-memory implementation of platform.Messenger,
// platform.Provisioner, and platform.Directory. Scheduled deletes are
// recorded, never executed, so tests stay deterministic and leak no
// timers.
type Platform struct {
	mu     sync.Mutex
	nextID int

	Messages  []*Message
	Scheduled []*ScheduledDelete

	CreatedChannels []platform.ChannelRef
	DeletedChannels []platform.ChannelRef

	DisplayNames map[string]string // user id -> name; missing ids echo back

	// Injectable failures
	SendErr          error
	EditErr          error
	CreateChannelErr error
	DeleteChannelErr error
}

func NewPlatform() *Platform {
	return &Platform{DisplayNames: make(map[string]string)}
}

func (f *Platform) Send(channel platform.ChannelRef, text string) (platform.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return platform.MessageRef{}, f.SendErr
	}
	return f.record(channel, text, ""), nil
}

func (f *Platform) Edit(ref platform.MessageRef, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.EditErr != nil {
		return f.EditErr
	}
	for _, m := range f.Messages {
		if m.Ref == ref && !m.Deleted {
			m.Text = text
			return nil
		}
	}
	return errors.New("edit of unknown message " + ref.ID)
}

func (f *Platform) Delete(ref platform.MessageRef, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Deleting an already-gone message must be tolerated
	for _, m := range f.Messages {
		if m.Ref == ref {
			m.Deleted = true
		}
	}
	return nil
}

func (f *Platform) DeleteAfter(ref platform.MessageRef, delay time.Duration, reason string) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched := &ScheduledDelete{Ref: ref, Delay: delay, Reason: reason}
	f.Scheduled = append(f.Scheduled, sched)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		sched.Cancelled = true
	}
}

func (f *Platform) Reply(to platform.MessageRef, text string) (platform.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return platform.MessageRef{}, f.SendErr
	}
	msg := f.record(to.Channel, text, to.ID)
	return msg, nil
}

func (f *Platform) CreateVotingChannel(guildID, name string) (platform.ChannelRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateChannelErr != nil {
		return "", f.CreateChannelErr
	}
	f.nextID++
	channel := platform.ChannelRef(fmt.Sprintf("chan-voting-%d", f.nextID))
	f.CreatedChannels = append(f.CreatedChannels, channel)
	return channel, nil
}

func (f *Platform) DeleteChannel(guildID string, channel platform.ChannelRef, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteChannelErr != nil {
		return f.DeleteChannelErr
	}
	f.DeletedChannels = append(f.DeletedChannels, channel)
	return nil
}

func (f *Platform) DisplayName(guildID, userID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name, ok := f.DisplayNames[userID]; ok {
		return name
	}
	return userID
}

// record appends a message under the lock. Callers hold f.mu.
func (f *Platform) record(channel platform.ChannelRef, text, replyTo string) platform.MessageRef {
	f.nextID++
	msg := &Message{
		Ref:     platform.MessageRef{Channel: channel, ID: fmt.Sprintf("msg-%d", f.nextID)},
		Text:    text,
		ReplyTo: replyTo,
	}
	f.Messages = append(f.Messages, msg)
	return msg.Ref
}

// Text returns the current content of a message.
func (f *Platform) Text(ref platform.MessageRef) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.Messages {
		if m.Ref == ref {
			return m.Text
		}
	}
	return ""
}

// LiveIn returns the non-deleted message texts in a channel, in send order.
func (f *Platform) LiveIn(channel platform.ChannelRef) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.Messages {
		if m.Ref.Channel == channel && !m.Deleted {
			out = append(out, m.Text)
		}
	}
	return out
}

// LastReply returns the text of the most recent reply sent anywhere.
func (f *Platform) LastReply() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Messages) - 1; i >= 0; i-- {
		if f.Messages[i].ReplyTo != "" {
			return f.Messages[i].Text
		}
	}
	return ""
}

// ContainsLive reports whether any live message in the channel contains
// the substring.
func (f *Platform) ContainsLive(channel platform.ChannelRef, substr string) bool {
	for _, text := range f.LiveIn(channel) {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

// Command builds a models.Command with fixture defaults: a poll-manager
// speaking in the management channel of the fixture guild. Mutate the
// returned value for other scenarios.
func Command(verb string, args ...string) models.Command {
	raw := "!" + verb
	if len(args) > 0 {
		raw += " " + strings.Join(args, " ")
	}
	return models.Command{
		Verb:        verb,
		Args:        args,
		Raw:         raw,
		AuthorID:    "user-mgr",
		AuthorRoles: []string{models.RolePollManager},
		ChannelID:   string(ManagementChannel),
		MessageID:   "cmd-msg",
		GuildID:     GuildID,
	}
}
