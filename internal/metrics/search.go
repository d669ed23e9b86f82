package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toolforge",
			Name:      "search_cache_total",
			Help:      "Search result cache lookups by tier and outcome",
		},
		[]string{"tier", "result"}, // tier: "local" / "shared"; result: "hit" / "miss"
	)

	SearchRankDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "toolforge",
			Name:      "search_rank_duration_seconds",
			Help:      "Time spent scoring or sorting a candidate set",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"mode"}, // "fuzzy" / "sort"
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "toolforge",
			Name:      "search_results",
			Help:      "Number of tools returned per computed search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	CandidateFetchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "toolforge",
			Name:      "candidate_fetch_errors_total",
			Help:      "Failed candidate fetches from the tool source",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchCacheTotal)
	prometheus.MustRegister(SearchRankDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(CandidateFetchErrorsTotal)
	searchMetricsRegistered = true
}
