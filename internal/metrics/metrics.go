package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the collectors for weather lookups
type Metrics struct {
	Registry *prometheus.Registry

	lookups  *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a registry with the lookup collectors and the Go runtime collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "lookups_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_lookup",
			Name:      "lookup_duration_seconds",
			Help:      "Time spent in a single weather lookup.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.lookups,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveLookup records the outcome and latency of one lookup
func (m *Metrics) ObserveLookup(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(outcome).Inc()
	m.duration.Observe(took.Seconds())
}
