// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/apella/models"
)

var ErrNotPollManager = errors.New("author lacks the poll-manager role")

// PollIDLength is the number of uuid hex characters kept for a poll id.
// Six characters keep ids easy to retype in chat while staying
// collision-resistant within a guild's handful of active polls.
const PollIDLength = 6

// GeneratePollID creates a short random poll id from a UUID v4.
// Callers must check the id against the guild's registry and retry on
// the (unlikely) collision.
func GeneratePollID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:PollIDLength]
}

// HasRole reports whether the role name appears in the member's roles.
// Discord role names are case-sensitive; no folding is applied.
func HasRole(roles []string, name string) bool {
	for _, role := range roles {
		if role == name {
			return true
		}
	}
	return false
}

// RequirePollManager validates that the command author may manage polls.
func RequirePollManager(roles []string) error {
	if !HasRole(roles, models.RolePollManager) {
		return ErrNotPollManager
	}
	return nil
}
