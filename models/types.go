// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Poll stage constants
const (
	StageCreating = "creating"
	StageRunning  = "running"
	StageEnded    = "ended"
)

// Default poll text shown until the manager customizes it
const (
	DefaultTitle = "Untitled Poll"
	DefaultBody  = "This is where your description goes, you may use `!body` to update this"
)

// Role and surface names provisioned in every guild
const (
	RoleVoter       = "voter"
	RolePollManager = "poll-manager"

	CategoryName      = "Apella"
	ManagementChannel = "poll-management"
	ResultsChannel    = "poll-results"
)

// Option is a single labeled choice within a poll. Token is an emoji or a
// single word, unique within the poll, and doubles as the display title.
type Option struct {
	Token string
	Body  string
}

// Command is one inbound chat command, already stripped of the prefix and
// tokenized by the platform adapter.
type Command struct {
	Verb        string
	Args        []string
	Raw         string // full message text including prefix
	AuthorID    string
	AuthorRoles []string // role names held by the author
	ChannelID   string
	MessageID   string
	GuildID     string
}

// Arg returns the i-th argument or "" when absent.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
