package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	// RuntimeCollectors adds the go_* and process_* families.
	RuntimeCollectors bool
}

type PrometheusMetrics struct {
	registry       *prometheus.Registry
	httpRequests   *prometheus.CounterVec
	httpDuration   prometheus.Histogram
	activeRequests prometheus.Gauge
}

func NewPrometheusMetrics(opts Options) *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
		),
		activeRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_active",
				Help: "Active HTTP requests",
			},
		),
	}

	m.registry.MustRegister(m.httpRequests, m.httpDuration, m.activeRequests)

	if opts.RuntimeCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

func (m *PrometheusMetrics) IncHTTPRequests(method, path string, statusCode int) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
}

func (m *PrometheusMetrics) ObserveHTTPDuration(duration float64) {
	m.httpDuration.Observe(duration)
}

func (m *PrometheusMetrics) IncActiveRequests() {
	m.activeRequests.Inc()
}

func (m *PrometheusMetrics) DecActiveRequests() {
	m.activeRequests.Dec()
}

// Handler serves the registry in the text exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}
