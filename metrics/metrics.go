// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PollsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apella_polls_created_total",
		Help: "Polls created across all guilds",
	})
	PollsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apella_polls_started_total",
		Help: "Polls opened for voting",
	})
	PollsEnded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apella_polls_ended_total",
		Help: "Polls closed with a final tally",
	})
	PollsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apella_polls_deleted_total",
		Help: "Polls removed before or after completion",
	})
	VotesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apella_votes_recorded_total",
		Help: "Valid votes recorded (including vote changes)",
	})
	VotesWithdrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apella_votes_withdrawn_total",
		Help: "Votes withdrawn by their voter",
	})
	VotesInvalid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apella_votes_invalid_total",
		Help: "Vote commands naming no current option",
	})
)

// Serve exposes /metrics on addr. Blocks like http.ListenAndServe.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
