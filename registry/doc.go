// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry tracks every poll in a guild, partitioned by stage.

# Target Resolution

Each stage is a FIFO queue in creation order. A command carrying an
explicit poll id that matches a poll in the relevant stage targets that
poll (and the id is consumed from the arguments); otherwise the oldest
poll in the stage is the target.

# Channel Routing

Running polls register their voting channel in an index so vote and
withdraw commands resolve by originating channel without scanning.

# Consistency

Transition moves a poll between queues and updates the poll's own stage
field in one call. The queues and the field can therefore never
disagree; a mismatch is reported as ErrStageDesync and treated as a
programming error.

# Locking

Registry methods do not lock themselves. The dispatcher wraps each full
command in Lock/Unlock, serializing all mutation for a guild while
commands for other guilds proceed in parallel. Set guards its own
guild map and hands out per-guild registries.
*/
package registry
