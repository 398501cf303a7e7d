package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	submissions   prometheus.Counter
	statusChanges *prometheus.CounterVec
}

// NewMetrics initializes and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lodge_registration",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "lodge_registration",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method", "path"},
		),
		submissions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "lodge_registration",
				Subsystem: "applications",
				Name:      "submissions_total",
				Help:      "Total number of applications submitted.",
			},
		),
		statusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lodge_registration",
				Subsystem: "applications",
				Name:      "status_changes_total",
				Help:      "Total number of admin status updates.",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(m.httpRequests, m.httpDuration, m.submissions, m.statusChanges)
	return m
}

// RecordRequest increments request counters and observes duration.
func (m *Metrics) RecordRequest(method, path string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordSubmission counts an accepted application.
func (m *Metrics) RecordSubmission() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

// RecordStatusChange counts a status update by resulting status.
func (m *Metrics) RecordStatusChange(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
