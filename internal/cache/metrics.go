package cache

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "ctpsync"
	subsystem = "key_cache"
)

// Metrics counts key cache hits and misses per resource type.
type Metrics struct {
	Hits   *prometheus.CounterVec
	Misses *prometheus.CounterVec
}

// NewMetrics creates the cache counters and registers them on reg.
// A nil reg leaves the counters unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "hits_total",
			Help:      "Number of key lookups answered from the cache.",
		}, []string{"resource_type"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "misses_total",
			Help:      "Number of key lookups that had to query the backend.",
		}, []string{"resource_type"}),
	}
	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses)
	}
	return m
}
