package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"strategy", "outcome"},
	)

	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search execution time in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"strategy"},
	)

	searchClauses = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_clauses",
			Help:      "Number of conjunctive clauses per search",
			Buckets:   []float64{1, 2, 3, 4, 6, 8},
		},
	)

	searchMatches = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_matches",
			Help:      "Number of trials confirmed by every clause, before truncation",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"strategy"},
	)

	indexTrials = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "index_trials",
		Help:      "Number of trials in the loaded index",
	})

	indexVocabulary = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "index_vocabulary_terms",
		Help:      "Vocabulary size of the term-weight model",
	})
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(searchRequestsTotal)
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(searchClauses)
	prometheus.MustRegister(searchMatches)
	prometheus.MustRegister(indexTrials)
	prometheus.MustRegister(indexVocabulary)
}

// ObserveSearch records one search execution. err marks the outcome as "error"; a search
// with no matches is "empty".
func ObserveSearch(strategy string, clauses, matches int, elapsed time.Duration, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case matches == 0:
		outcome = "empty"
	}
	searchRequestsTotal.WithLabelValues(strategy, outcome).Inc()
	searchDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
	if err == nil {
		searchClauses.Observe(float64(clauses))
		searchMatches.WithLabelValues(strategy).Observe(float64(matches))
	}
}

// SetIndexSize publishes the loaded index dimensions.
func SetIndexSize(trials, vocabulary int) {
	indexTrials.Set(float64(trials))
	indexVocabulary.Set(float64(vocabulary))
}
