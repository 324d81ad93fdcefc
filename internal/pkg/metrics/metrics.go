// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "printshop"

type Metrics struct {
	registry *prometheus.Registry

	Requests       *prometheus.CounterVec
	LatencyMS      *prometheus.HistogramVec
	Quotes         *prometheus.CounterVec
	QuoteLatencyMS prometheus.Histogram
	StatusChanges  *prometheus.CounterVec
	PricingHealthy prometheus.Gauge
	QuoteSessions  prometheus.Gauge
	EventsFailed   prometheus.Counter
}

// New registers every collector on a fresh registry, so tests and multiple
// instances in one process don't collide on the default registerer.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		Quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "quotes_total",
			Help:      "Decoration quotes by the path that produced them.",
		}, []string{"source"}),
		QuoteLatencyMS: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "quote_duration_ms",
			Help:      "Time to produce a decoration quote in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "status_changes_total",
			Help:      "Order status change attempts by outcome.",
		}, []string{"outcome"}),
		PricingHealthy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "service_healthy",
			Help:      "1 if the last pricing service health check passed.",
		}),
		QuoteSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "quote_sessions",
			Help:      "Open debounced quote sessions.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "events_failed_total",
			Help:      "Status change events that could not be published.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.LatencyMS,
		m.Quotes,
		m.QuoteLatencyMS,
		m.StatusChanges,
		m.PricingHealthy,
		m.QuoteSessions,
		m.EventsFailed,
	)
	return m
}

func (m *Metrics) ObserveRequest(handler string, status int, d time.Duration) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) ObserveQuote(source string, d time.Duration) {
	m.Quotes.WithLabelValues(source).Inc()
	m.QuoteLatencyMS.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) ObserveStatusChange(outcome string) {
	m.StatusChanges.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveEventFailure() {
	m.EventsFailed.Inc()
}

func (m *Metrics) SetPricingHealthy(healthy bool) {
	if healthy {
		m.PricingHealthy.Set(1)
		return
	}
	m.PricingHealthy.Set(0)
}

func (m *Metrics) SetQuoteSessions(n int) {
	m.QuoteSessions.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
