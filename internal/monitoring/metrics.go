package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects request-level counters for the AI pipelines.
type Metrics struct {
	registry *prometheus.Registry

	ExtractionTotal *prometheus.CounterVec
	ChatTurns       *prometheus.CounterVec
	OrdersExtracted prometheus.Counter
	ProviderLatency *prometheus.HistogramVec
}

// New creates a metrics collector with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ExtractionTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menu_extraction_total",
				Help: "Menu extraction requests by outcome",
			},
			[]string{"status"},
		),
		ChatTurns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_turns_total",
				Help: "Chat turns processed by outcome",
			},
			[]string{"status"},
		),
		OrdersExtracted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_extracted_total",
				Help: "Structured orders extracted from chat replies",
			},
		),
		ProviderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "provider_request_duration_seconds",
				Help:    "Latency of completion provider calls",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
			},
			[]string{"operation"},
		),
	}

	m.registry.MustRegister(
		m.ExtractionTotal,
		m.ChatTurns,
		m.OrdersExtracted,
		m.ProviderLatency,
	)
	return m
}

// Handler exposes the registry for the metrics server.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveProvider records the duration of one provider call.
func (m *Metrics) ObserveProvider(operation string, start time.Time) {
	m.ProviderLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
