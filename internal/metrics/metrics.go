package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the relay's Prometheus collectors.
type Metrics struct {
	registry         *prometheus.Registry
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	registrations    prometheus.Counter
}

// New creates the collectors on a dedicated registry, so each instance
// (and each test) starts from zero.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "push_relay",
			Name:      "dispatch_total",
			Help:      "Notification dispatch attempts by route and outcome.",
		}, []string{"route", "outcome"}),
		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "push_relay",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent waiting on the delivery provider.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "push_relay",
			Name:      "registrations_total",
			Help:      "Accepted device registrations.",
		}),
	}

	m.registry.MustRegister(
		m.dispatchTotal,
		m.dispatchDuration,
		m.registrations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDispatch records one provider call.
func (m *Metrics) ObserveDispatch(route, outcome string, elapsed time.Duration) {
	m.dispatchTotal.WithLabelValues(route, outcome).Inc()
	m.dispatchDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) IncRegistrations() { m.registrations.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
