package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Query metrics
	QueryDuration *prometheus.HistogramVec
	QueryResults  *prometheus.HistogramVec

	// Mutation metrics
	Mutations        *prometheus.CounterVec
	MutationErrors   *prometheus.CounterVec
	StatsCacheHits   prometheus.Counter
	StatsCacheMiss   prometheus.Counter
	CollectionSize   prometheus.Gauge
	FavoritedNotices prometheus.Gauge
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		QueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "query_duration_seconds",
			Help:      "Time spent evaluating notice queries",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25},
		}, []string{"operation"}),
		QueryResults: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "query_result_size",
			Help:      "Number of records returned per query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"operation"}),
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mutations_total",
			Help:      "Total number of applied user-state mutations",
		}, []string{"operation"}),
		MutationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mutation_errors_total",
			Help:      "Total number of rejected user-state mutations",
		}, []string{"operation"}),
		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stats_cache_hits_total",
			Help:      "Dashboard stats served from cache",
		}),
		StatsCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stats_cache_misses_total",
			Help:      "Dashboard stats recomputed on cache miss",
		}),
		CollectionSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "collection_size",
			Help:      "Number of notices held in memory",
		}),
		FavoritedNotices: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "favorited_notices",
			Help:      "Number of notices currently favorited",
		}),
	}
}
