package async

import "github.com/prometheus/client_golang/prometheus"

// poolMetrics holds the Prometheus collectors for a single pool instance.
type poolMetrics struct {
	submitted  prometheus.Counter
	completed  *prometheus.CounterVec
	inflight   prometheus.Gauge
	queueDepth prometheus.Gauge
}

func newPoolMetrics(reg prometheus.Registerer) *poolMetrics {
	m := &poolMetrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scrapekit_pool_tasks_submitted_total",
			Help: "Total number of tasks submitted to the shared worker pool",
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scrapekit_pool_tasks_completed_total",
			Help: "Total number of completed pool tasks by outcome",
		}, []string{"status"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scrapekit_pool_tasks_inflight",
			Help: "Number of pool tasks currently executing",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scrapekit_pool_queue_depth",
			Help: "Number of tasks waiting in the pool queue",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.submitted, m.completed, m.inflight, m.queueDepth)
	}

	return m
}
