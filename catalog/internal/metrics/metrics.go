package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "catalog"

type Metrics struct {
	CacheLookups *prometheus.CounterVec
	StoreQueries *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by payload kind and outcome (hit, miss, unavailable).",
		}, []string{"kind", "status"}),
		StoreQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_queries_total",
			Help:      "Store queries by operation and outcome (ok, not_found, error).",
		}, []string{"operation", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.CacheLookups, m.StoreQueries)
	}
	return m
}

// ObserveCache is safe on a nil receiver so callers can run without metrics.
func (m *Metrics) ObserveCache(kind, status string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) ObserveStore(operation, status string) {
	if m == nil {
		return
	}
	m.StoreQueries.WithLabelValues(operation, status).Inc()
}
