package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal  *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	enrichmentRuns *prometheus.CounterVec
	auditDropped   prometheus.Counter
}

// NewMetrics builds and registers all collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "netone_http_requests_total",
			Help: "HTTP requests by path, method and status code.",
		}, []string{"path", "method", "status"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "netone_http_errors_total",
			Help: "HTTP error responses by path, method and error code.",
		}, []string{"path", "method", "code"}),
		enrichmentRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "netone_enrichment_runs_total",
			Help: "Enrichment attempts by outcome (enriched, skipped, failed, dropped).",
		}, []string{"outcome"}),
		auditDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netone_audit_entries_dropped_total",
			Help: "Audit entries lost to storage failures.",
		}),
	}
	m.registry.MustRegister(m.requestsTotal, m.errorsTotal, m.enrichmentRuns, m.auditDropped)
	return m
}

// RecordRequest counts a completed HTTP request.
func (m *Metrics) RecordRequest(path, method string, status int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

// RecordError counts an error response.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(path, method, code).Inc()
}

// RecordEnrichment counts one enrichment attempt outcome.
func (m *Metrics) RecordEnrichment(outcome string) {
	if m == nil {
		return
	}
	m.enrichmentRuns.WithLabelValues(outcome).Inc()
}

// RecordAuditDrop counts a lost audit entry.
func (m *Metrics) RecordAuditDrop() {
	if m == nil {
		return
	}
	m.auditDropped.Inc()
}

// Handler serves the metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
