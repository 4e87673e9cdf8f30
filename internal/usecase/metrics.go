package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	selectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maxprotein_selections_total",
			Help: "Total number of selections computed, by algorithm",
		},
		[]string{"algorithm"},
	)

	selectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maxprotein_selection_duration_seconds",
			Help:    "Time spent computing a selection, by algorithm",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"algorithm"},
	)

	selectionCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maxprotein_selection_candidates",
			Help:    "Number of candidates a selection ran over, by algorithm",
			Buckets: []float64{0, 5, 10, 15, 20, 25, 30, 45, 63, 250, 1000, 10000},
		},
		[]string{"algorithm"},
	)

	selectionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "maxprotein_selection_cache_hits_total",
			Help: "Total number of selections served from cache",
		},
	)
)
