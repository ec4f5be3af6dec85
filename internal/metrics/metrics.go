// Package metrics holds the Prometheus instruments of the portal.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-identity-portal/models"
)

// Registration outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// Metrics tracks HTTP traffic, registrations and status transitions.
// Labels never carry request ids or applicant data.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests          *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	Registrations         *prometheus.CounterVec
	StatusTransitions     *prometheus.CounterVec
	VerificationFallbacks prometheus.Counter
}

// New creates a Metrics instance registered on its own registry, together
// with the Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_portal_http_requests_total",
			Help: "Total number of HTTP requests by route pattern and status code",
		}, []string{"method", "route", "code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "identity_portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_portal_registrations_total",
			Help: "Total number of registration attempts by outcome",
		}, []string{"outcome"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_portal_status_transitions_total",
			Help: "Total number of identity request status changes",
		}, []string{"from", "to"}),
		VerificationFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "identity_portal_verification_fallbacks_total",
			Help: "Total number of verifier errors or timeouts that left a request PENDING",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest records one handled request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveHTTPRequest(method, route string, code int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// IncrementRegistration records a registration attempt with the given
// outcome.
func (m *Metrics) IncrementRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

// IncrementTransition records a status change.
func (m *Metrics) IncrementTransition(from, to models.IdentityStatus) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// IncrementVerificationFallback records a verifier failure.
func (m *Metrics) IncrementVerificationFallback() {
	if m == nil {
		return
	}
	m.VerificationFallbacks.Inc()
}
