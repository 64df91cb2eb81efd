package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "onboarding"

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	gateStates  *prometheus.CounterVec
	submissions *prometheus.CounterVec
	requests    *prometheus.CounterVec
	outbound    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gateStates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_gate_total",
			Help:      "Session gate evaluations by resulting state.",
		}, []string{"state"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_submissions_total",
			Help:      "Profile submissions by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		outbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "datastore_requests_total",
			Help:      "Requests sent to the data store by method and status code.",
		}, []string{"code", "method"}),
	}
	m.registry.MustRegister(
		m.gateStates,
		m.submissions,
		m.requests,
		m.outbound,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveGate(state string) {
	m.gateStates.WithLabelValues(state).Inc()
}

func (m *Metrics) ObserveSubmission(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// InstrumentTransport counts the requests next sends to the data store.
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(m.outbound, next)
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
