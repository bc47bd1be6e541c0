// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricVotesTotal             = "poll_votes_total"
	MetricPollAssembliesTotal    = "poll_assemblies_total"
	MetricRankingDurationSeconds = "poll_ranking_duration_seconds"
)

// Vote outcome labels.
const (
	OutcomeAccepted       = "accepted"
	OutcomePollClosed     = "poll_closed"
	OutcomePollNotFound   = "poll_not_found"
	OutcomeOptionNotFound = "option_not_found"
	OutcomeError          = "error"
)

// Metrics contains Prometheus metrics for poll storage.
// A nil *Metrics records nothing.
type Metrics struct {
	votesTotal      *prometheus.CounterVec
	assembliesTotal prometheus.Counter
	rankingDuration prometheus.Histogram
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		votesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricVotesTotal,
				Help: "Total number of vote submissions by outcome",
			},
			[]string{"outcome"},
		),
		assembliesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricPollAssembliesTotal,
				Help: "Total number of ranked poll views derived from storage",
			},
		),
		rankingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricRankingDurationSeconds,
				Help:    "Time spent normalizing and ranking a poll in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
			},
		),
	}
}

// Collectors returns all collectors, mainly for tests.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.votesTotal,
		m.assembliesTotal,
		m.rankingDuration,
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) incVote(outcome string) {
	if m == nil {
		return
	}
	m.votesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeAssembly(d time.Duration) {
	if m == nil {
		return
	}
	m.assembliesTotal.Inc()
	m.rankingDuration.Observe(d.Seconds())
}

func voteOutcome(err error) string {
	switch {
	case errors.Is(err, ErrPollClosed):
		return OutcomePollClosed
	case errors.Is(err, ErrPollNotFound):
		return OutcomePollNotFound
	case errors.Is(err, ErrOptionNotFound):
		return OutcomeOptionNotFound
	default:
		return OutcomeError
	}
}
