package environment

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors an Environment reports
// evaluation outcomes and cache effectiveness through.
type Metrics struct {
	evaluationDuration *prometheus.HistogramVec
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
}

// NewMetrics registers LiQuer's collectors against reg and returns the
// handle used to record observations. reg may be nil, in which case the
// collectors are created but never registered (useful in tests that don't
// care about a Prometheus endpoint).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		evaluationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "liquer",
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating a query, by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "liquer",
			Name:      "cache_hits_total",
			Help:      "Number of evaluations served directly from the result cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "liquer",
			Name:      "cache_misses_total",
			Help:      "Number of evaluations that had to plan and execute a query.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.evaluationDuration, m.cacheHits, m.cacheMisses)
	}
	return m
}

func (m *Metrics) observeEvaluation(d time.Duration, outcome string) {
	if m == nil {
		return
	}
	m.evaluationDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordCacheHit increments the cache-hit counter. The interpreter package
// has no metrics dependency of its own, so a cache-aware Store or Cache
// wrapper that wants these counted calls this directly.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
