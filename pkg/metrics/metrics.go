package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the core session and LLM paths. Registered on the default
// registry and served by promhttp in the handler layer.
var (
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "sessions_started_total",
		Help:      "Counseling sessions started.",
	})
	SessionsEnded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "sessions_ended_total",
		Help:      "Counseling sessions ended, including idle sweeps.",
	})
	Turns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "turns_total",
		Help:      "User turns processed.",
	})
	LLMCalls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "llm_calls_total",
		Help:      "Chat completions attempted.",
	})
	LLMFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "llm_failures_total",
		Help:      "Chat completions that failed after retries and fell back to rules.",
	})
	SOSEvents = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "sos_events_total",
		Help:      "Turns that triggered the SOS action plan.",
	})
)
