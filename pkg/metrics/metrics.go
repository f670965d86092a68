// Package metrics exposes the Prometheus instruments for the advisor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExternalCalls counts invocations of the external collaborators,
	// labeled by kind ("generate" or "fetch"). This is the cost-sensitive
	// budget the session counter summarizes per session.
	ExternalCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardwise_external_calls_total",
		Help: "Invocations of the text-generation and content-fetch collaborators.",
	}, []string{"kind"})

	// SessionsStarted counts advisory sessions created.
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardwise_sessions_started_total",
		Help: "Advisory sessions created.",
	})

	// Turns counts conversational turns by classified intent.
	Turns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardwise_turns_total",
		Help: "Conversational turns processed, by intent.",
	}, []string{"intent"})

	// Recommendations counts completed ranking passes that installed a
	// primary card.
	Recommendations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardwise_recommendations_total",
		Help: "Completed ranking passes.",
	})
)
