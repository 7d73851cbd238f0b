// Package metrics exposes Prometheus counters for the recipe client and
// the favorites store.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label names.
const (
	LabelOutcome = "outcome"
	LabelOp      = "op"
	LabelTarget  = "target"
)

// Outcome label values for generate requests.
const (
	OutcomeOK        = "ok"
	OutcomeNetwork   = "network_error"
	OutcomeServer    = "server_error"
	OutcomeMalformed = "malformed"
	OutcomeCached    = "cached"
	OutcomeRejected  = "no_selection"
	OutcomeStale     = "stale"
)

// Recipe client metrics.
var (
	GenerateRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chow_generate_requests_total",
			Help: "Recipe generation requests by outcome",
		},
		[]string{LabelOutcome},
	)

	GenerateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chow_generate_duration_seconds",
			Help:    "Latency of recipe generation requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)
)

// Favorites and share metrics.
var (
	FavoriteOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chow_favorite_ops_total",
			Help: "Favorites store operations by kind",
		},
		[]string{LabelOp, LabelOutcome},
	)

	FavoritesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chow_favorites_stored",
			Help: "Number of favorites currently stored",
		},
	)

	Shares = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chow_shares_total",
			Help: "Share and copy actions by target and outcome",
		},
		[]string{LabelTarget, LabelOutcome},
	)
)

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
