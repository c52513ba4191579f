// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines shared domain types and constants.

# Domain Types

  - Option: one labeled choice within a poll (token + description)
  - Command: a tokenized inbound chat command with author/channel context

# Constants

Poll stages:

	StageCreating = "creating"
	StageRunning  = "running"
	StageEnded    = "ended"

Provisioned names:

	RoleVoter         = "voter"
	RolePollManager   = "poll-manager"
	CategoryName      = "Apella"
	ManagementChannel = "poll-management"
	ResultsChannel    = "poll-results"

Default poll text:

	DefaultTitle = "Untitled Poll"
	DefaultBody  = "This is where your description goes, ..."
*/
package models
