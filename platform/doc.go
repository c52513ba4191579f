// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package platform defines the contracts between the poll engine and the
chat platform.

The engine never talks to Discord directly; it only sees these
interfaces. The discord package provides the production implementation
and testutil provides in-memory fakes.

# Interfaces

  - Messenger: send/edit/delete/reply, plus delayed self-destructing
    deletes behind a cancellable timer
  - Provisioner: create/tear down the dedicated voting channel
  - Directory: user id → display name for supporter lists

# Types

  - ChannelRef, MessageRef: opaque handles to platform objects
  - Surfaces: the per-guild category/management/results channels
*/
package platform
