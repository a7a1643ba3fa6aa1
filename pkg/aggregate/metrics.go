package aggregate

import "github.com/prometheus/client_golang/prometheus"

type aggregateMetrics struct {
	results  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func newAggregateMetrics(reg prometheus.Registerer) *aggregateMetrics {
	m := &aggregateMetrics{
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapekit_aggregate_results_total",
			Help: "Total results collected, by provider",
		}, []string{"provider"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapekit_aggregate_query_failures_total",
			Help: "Total failed provider queries, by provider",
		}, []string{"provider"}),
	}

	if reg != nil {
		reg.MustRegister(m.results, m.failures)
	}

	return m
}
