// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/majority/cliparse"
	"github.com/danielhkuo/majority/handlers"
	"github.com/danielhkuo/majority/middleware"
	"github.com/danielhkuo/majority/store"
)

// NewRouter registers every endpoint. metrics may be nil; /metrics is only
// served when gatherer is non-nil.
func NewRouter(polls *store.Polls, cfg cliparse.Config, metrics *middleware.Metrics, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(polls, cfg)
	votingHandler := handlers.NewVotingHandler(polls, cfg)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, metrics.Instrument(pattern, middleware.WithLogging(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Poll management
	handle("POST /polls", pollHandler.CreatePoll)
	handle("GET /polls/{id}", pollHandler.GetPoll)
	handle("POST /polls/{id}/options", pollHandler.AddOptions)
	handle("POST /polls/{id}/close", pollHandler.ClosePoll)

	// Voting
	handle("POST /voters", votingHandler.RegisterVoter)
	handle("POST /polls/{id}/votes", votingHandler.Vote)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("majority API v1"))
	})

	return mux
}
