// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"

	"github.com/danielhkuo/apella/models"
)

func TestGeneratePollID(t *testing.T) {
	id := GeneratePollID()
	if len(id) != PollIDLength {
		t.Errorf("GeneratePollID() length = %d, want %d", len(id), PollIDLength)
	}
	// Verify it's valid lowercase hex
	for _, c := range id {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("GeneratePollID() contains invalid hex char: %c", c)
		}
	}

	// Test randomness - two IDs should be different
	if GeneratePollID() == GeneratePollID() {
		t.Error("GeneratePollID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  bool
	}{
		{"has role", []string{"voter", "poll-manager"}, true},
		{"only role", []string{"poll-manager"}, true},
		{"missing role", []string{"voter", "admin"}, false},
		{"no roles", nil, false},
		{"case sensitive", []string{"Poll-Manager"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRole(tt.roles, models.RolePollManager); got != tt.want {
				t.Errorf("HasRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequirePollManager(t *testing.T) {
	if err := RequirePollManager([]string{models.RolePollManager}); err != nil {
		t.Errorf("RequirePollManager() with role = %v, want nil", err)
	}

	err := RequirePollManager([]string{models.RoleVoter})
	if !errors.Is(err, ErrNotPollManager) {
		t.Errorf("RequirePollManager() without role = %v, want ErrNotPollManager", err)
	}
}
