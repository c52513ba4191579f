// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"sync"

	"github.com/danielhkuo/apella/platform"
)

// Set maps guild ids to their registries. Guilds are fully independent;
// there is no cross-guild state anywhere in the engine.
type Set struct {
	mu     sync.Mutex
	guilds map[string]*Registry
}

func NewSet() *Set {
	return &Set{guilds: make(map[string]*Registry)}
}

// Put installs the registry for a guild. Called when guild provisioning
// completes. The gateway re-delivers GuildCreate for every guild after a
// session re-identify, so a guild that already has a registry keeps it
// (polls and voting channels stay alive across reconnects) and only the
// surface refs are refreshed.
func (s *Set) Put(guildID string, surfaces platform.Surfaces) *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.guilds[guildID]; ok {
		reg.Lock()
		reg.Surfaces = surfaces
		reg.Unlock()
		return reg
	}
	reg := New(guildID, surfaces)
	s.guilds[guildID] = reg
	return reg
}

// Get returns the registry for a guild, or false when the guild has not
// been provisioned yet.
func (s *Set) Get(guildID string) (*Registry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.guilds[guildID]
	return reg, ok
}
