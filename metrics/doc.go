// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus counters for poll and vote activity.

Counters are registered against the default registry via promauto and
incremented from the command handlers. Serve exposes /metrics when a
listen address is configured; leaving METRICS_ADDR empty disables the
listener entirely.
*/
package metrics
