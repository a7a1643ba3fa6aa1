package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine-level Prometheus metrics. Pool and aggregator
// collectors are registered separately against the same registry.
type Metrics struct {
	registry *prometheus.Registry

	// Discovery metrics
	DiscoveryCyclesTotal  *prometheus.CounterVec
	DiscoveryDuration     prometheus.Histogram
	DiscoveryLoadedGauge  prometheus.Gauge
	DiscoverySkippedGauge prometheus.Gauge
}

// NewMetrics creates and registers the engine metric families.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		DiscoveryCyclesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrapekit_discovery_cycles_total",
				Help: "Total discovery cycles run, by trigger",
			},
			[]string{"trigger"},
		),
		DiscoveryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scrapekit_discovery_duration_seconds",
				Help:    "Wall time of a full discovery cycle",
				Buckets: prometheus.DefBuckets,
			},
		),
		DiscoveryLoadedGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scrapekit_discovery_loaded_providers",
				Help: "Providers loaded by the most recent discovery cycle",
			},
		),
		DiscoverySkippedGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scrapekit_discovery_skipped_providers",
				Help: "Providers enumerated but not loaded in the most recent cycle",
			},
		),
	}

	registry.MustRegister(
		m.DiscoveryCyclesTotal,
		m.DiscoveryDuration,
		m.DiscoveryLoadedGauge,
		m.DiscoverySkippedGauge,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCycle records one discovery cycle's outcome.
func (m *Metrics) ObserveCycle(trigger string, loaded, enumerated int, elapsed time.Duration) {
	m.DiscoveryCyclesTotal.WithLabelValues(trigger).Inc()
	m.DiscoveryDuration.Observe(elapsed.Seconds())
	m.DiscoveryLoadedGauge.Set(float64(loaded))
	skipped := enumerated - loaded
	if skipped < 0 {
		skipped = 0
	}
	m.DiscoverySkippedGauge.Set(float64(skipped))
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
