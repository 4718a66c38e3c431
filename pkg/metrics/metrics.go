// Package metrics exposes Prometheus collectors for the long-running
// command surface. Everything is namespaced under ef_.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SynthesisTotal counts manifest synthesis runs by kind (raw, helm,
	// image).
	SynthesisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ef_synthesis_total",
		Help: "Number of manifest synthesis runs by kind.",
	}, []string{"kind"})

	// SynthesisDuration observes how long one synthesis run takes.
	SynthesisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ef_synthesis_duration_seconds",
		Help:    "Duration of manifest synthesis runs.",
		Buckets: prometheus.DefBuckets,
	})

	// RouteMergeTotal counts route registry loads.
	RouteMergeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ef_route_merge_total",
		Help: "Number of route registry merges.",
	})

	// StatusPollDuration observes cluster status poll latency.
	StatusPollDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ef_status_poll_duration_seconds",
		Help:    "Duration of cluster status polls.",
		Buckets: prometheus.DefBuckets,
	})

	// StatusPollErrors counts failed cluster status polls.
	StatusPollErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ef_status_poll_errors_total",
		Help: "Number of failed cluster status polls.",
	})

	// SubprocessTotal counts kubectl/helm invocations by tool and outcome.
	SubprocessTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ef_subprocess_total",
		Help: "Number of kubectl/helm subprocess invocations.",
	}, []string{"tool", "outcome"})

	// WatcherEventsTotal counts debounced file change notifications.
	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ef_watcher_events_total",
		Help: "Number of debounced YAML file change events.",
	})
)
