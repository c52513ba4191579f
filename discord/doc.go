// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package discord adapts the poll engine to Discord via discordgo.

Adapter implements the platform interfaces (Messenger, Provisioner,
Directory) on a discordgo session. Bot wires gateway events:

  - GuildCreate: EnsureGuild provisions the voter and poll-manager
    roles, the polling category, and the management/results channels,
    then installs a registry for the guild
  - MessageCreate: prefixed messages are tokenized and dispatched

# Permissions

Provisioned channels use three fixed bitmasks: permAllText (full text
access, poll-manager), permVoting (read + send, voters in a voting
channel), and permReadOnly (@everyone in the results channel). The
management channel and every voting channel deny @everyone entirely.

This package contains no poll logic; everything here is replaceable by
the fakes in testutil.
*/
package discord
