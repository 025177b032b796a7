// Package metrics holds the Prometheus collectors of the graph viewer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Abort reasons used as the "reason" label of RefreshAborts.
const (
	ReasonNoSites   = "no_sites"
	ReasonNoPlayers = "no_players"
	ReasonNoLimits  = "no_limits"
)

// RefreshDuration is the wall time of one graph refresh, query to PNG.
var RefreshDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "pokergraph",
		Subsystem: "graph",
		Name:      "refresh_duration_seconds",
		Help:      "Time to query, accumulate and render the profit graph",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
)

// RefreshAborts counts refreshes abandoned before querying.
var RefreshAborts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "pokergraph",
		Subsystem: "graph",
		Name:      "refresh_aborts_total",
		Help:      "Graph refreshes abandoned because the filter selection was incomplete",
	},
	[]string{"reason"},
)

var GraphExports = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "pokergraph",
		Subsystem: "graph",
		Name:      "exports_total",
		Help:      "Graphs written to disk",
	},
)

// GraphHands is the number of hands in the most recent graph.
var GraphHands = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "pokergraph",
		Subsystem: "graph",
		Name:      "hands",
		Help:      "Hands plotted by the most recent refresh",
	},
)

// DatabaseChanges counts change notifications from the database watcher.
var DatabaseChanges = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "pokergraph",
		Subsystem: "watcher",
		Name:      "database_changes_total",
		Help:      "Database file changes seen by the watcher",
	},
)
