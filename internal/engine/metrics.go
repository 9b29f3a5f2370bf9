package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus instruments.
type Metrics struct {
	Resolves    *prometheus.CounterVec // outcome: ok, no_element, inconsistent, depth, platform
	Highlights  *prometheus.CounterVec // outcome: ok, not_cached, stale, platform
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	OpDuration  *prometheus.HistogramVec // op: resolve, highlight, find
}

// NewMetrics registers the engine's instruments with reg. Each engine
// instance needs its own registerer; tests pass prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Resolves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uiwalk_resolves_total",
			Help: "Point-to-locator resolutions by outcome",
		}, []string{"outcome"}),
		Highlights: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uiwalk_highlights_total",
			Help: "Cached-element highlight lookups by outcome",
		}, []string{"outcome"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "uiwalk_cache_hits_total",
			Help: "Element cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "uiwalk_cache_misses_total",
			Help: "Element cache misses",
		}),
		OpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uiwalk_op_duration_seconds",
			Help:    "Engine operation latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
}
