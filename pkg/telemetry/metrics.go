// Package telemetry exposes the service's Prometheus metrics.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the counters recorded by the messaging transport.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestsInFlight prometheus.Gauge
}

// NewMetrics creates a registry with Go runtime collectors plus the transport
// counters. The outcome label is "ok" or the failure class (validation,
// not_found, storage, dispatch, internal).
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "requests_total",
		Help:      "Messaging requests processed, by intent subject and outcome.",
	}, []string{"subject", "outcome"})
	requestsInFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "requests_in_flight",
		Help:      "Messaging requests currently being handled.",
	})
	registry.MustRegister(requestsTotal, requestsInFlight)

	return &Metrics{
		registry:         registry,
		RequestsTotal:    requestsTotal,
		RequestsInFlight: requestsInFlight,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
