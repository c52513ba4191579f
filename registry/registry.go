// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/apella/models"
	"github.com/danielhkuo/apella/platform"
	"github.com/danielhkuo/apella/poll"
)

var (
	ErrStageEmpty  = errors.New("no poll in the requested stage")
	ErrStageDesync = errors.New("poll stage and registry queue disagree")
)

// Registry holds every poll for one guild, partitioned by lifecycle
// stage. Each stage is a FIFO queue in creation order; the oldest poll
// in a stage is the default target for stage-appropriate commands.
//
// Registry methods do not lock. The command dispatcher serializes every
// mutating command for a guild through Lock/Unlock, preserving the
// single-threaded appearance the engine assumes.
type Registry struct {
	GuildID  string
	Surfaces platform.Surfaces

	mu        sync.Mutex
	stages    map[string][]*poll.Poll
	byChannel map[platform.ChannelRef]*poll.Poll
}

func New(guildID string, surfaces platform.Surfaces) *Registry {
	return &Registry{
		GuildID:  guildID,
		Surfaces: surfaces,
		stages: map[string][]*poll.Poll{
			models.StageCreating: nil,
			models.StageRunning:  nil,
			models.StageEnded:    nil,
		},
		byChannel: make(map[platform.ChannelRef]*poll.Poll),
	}
}

// Lock serializes command handling for this guild.
func (r *Registry) Lock() { r.mu.Lock() }

// Unlock releases the guild command lock.
func (r *Registry) Unlock() { r.mu.Unlock() }

// Add enqueues a freshly created poll into the creating stage.
func (r *Registry) Add(p *poll.Poll) {
	r.stages[models.StageCreating] = append(r.stages[models.StageCreating], p)
}

// Len reports how many polls sit in the given stage.
func (r *Registry) Len(stage string) int {
	return len(r.stages[stage])
}

// Find returns the poll with the given id in the given stage.
func (r *Registry) Find(stage, id string) (*poll.Poll, bool) {
	for _, p := range r.stages[stage] {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// FindAny returns the poll with the given id regardless of stage.
func (r *Registry) FindAny(id string) (*poll.Poll, bool) {
	for _, queue := range r.stages {
		for _, p := range queue {
			if p.ID == id {
				return p, true
			}
		}
	}
	return nil, false
}

// HasID reports whether any poll in any stage carries the id. Used to
// keep freshly generated ids collision-free within the guild.
func (r *Registry) HasID(id string) bool {
	for _, queue := range r.stages {
		for _, p := range queue {
			if p.ID == id {
				return true
			}
		}
	}
	return false
}

// ResolveTarget picks the poll a command applies to. When the first
// argument matches a poll id in the stage, that poll is returned and
// the id is consumed from the arguments; otherwise the oldest poll in
// the stage is the target and the arguments pass through untouched.
func (r *Registry) ResolveTarget(stage string, args []string) (*poll.Poll, []string, error) {
	if len(args) > 0 {
		if p, ok := r.Find(stage, args[0]); ok {
			return p, args[1:], nil
		}
	}
	queue := r.stages[stage]
	if len(queue) == 0 {
		return nil, args, fmt.Errorf("%w: %s", ErrStageEmpty, stage)
	}
	return queue[0], args, nil
}

// Transition moves a poll between stage queues and updates the poll's
// own stage field in the same step, so the two can never disagree. A
// mismatch between the poll's current stage and from is a programming
// error, not a runtime condition.
func (r *Registry) Transition(p *poll.Poll, from, to string) error {
	if p.Stage() != from {
		return fmt.Errorf("%w: poll %s is %s, expected %s", ErrStageDesync, p.ID, p.Stage(), from)
	}
	if !r.removeFromQueue(p, from) {
		return fmt.Errorf("%w: poll %s missing from %s queue", ErrStageDesync, p.ID, from)
	}
	r.stages[to] = append(r.stages[to], p)
	p.SetStage(to)
	return nil
}

// Remove drops the poll from whichever stage queue holds it and from
// the channel index.
func (r *Registry) Remove(p *poll.Poll) {
	r.removeFromQueue(p, p.Stage())
	for channel, bound := range r.byChannel {
		if bound == p {
			delete(r.byChannel, channel)
		}
	}
}

// All returns every poll in the guild, creating-stage first.
func (r *Registry) All() []*poll.Poll {
	var out []*poll.Poll
	for _, stage := range []string{models.StageCreating, models.StageRunning, models.StageEnded} {
		out = append(out, r.stages[stage]...)
	}
	return out
}

// BindChannel registers a running poll's voting channel so vote and
// withdraw commands route by originating channel, not by poll id.
func (r *Registry) BindChannel(channel platform.ChannelRef, p *poll.Poll) {
	r.byChannel[channel] = p
}

// UnbindChannel removes a voting channel from the routing index.
func (r *Registry) UnbindChannel(channel platform.ChannelRef) {
	delete(r.byChannel, channel)
}

// RouteByChannel resolves the running poll bound to the channel, if any.
func (r *Registry) RouteByChannel(channel platform.ChannelRef) (*poll.Poll, bool) {
	p, ok := r.byChannel[channel]
	return p, ok
}

// Reset empties every stage queue and the channel index. Used by
// resetall after the polls' surfaces are torn down.
func (r *Registry) Reset() {
	for stage := range r.stages {
		r.stages[stage] = nil
	}
	r.byChannel = make(map[platform.ChannelRef]*poll.Poll)
}

func (r *Registry) removeFromQueue(p *poll.Poll, stage string) bool {
	queue := r.stages[stage]
	for i, candidate := range queue {
		if candidate == p {
			r.stages[stage] = append(queue[:i], queue[i+1:]...)
			return true
		}
	}
	return false
}
