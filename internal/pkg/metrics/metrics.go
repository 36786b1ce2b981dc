package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reservation outcomes recorded by ReservationsTotal.
const (
	OutcomeCreated      = "created"
	OutcomeConflict     = "conflict"
	OutcomeInvalidRange = "invalid_range"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

type Metrics struct {
	// method, path, status_code
	HTTPRequestsTotal *prometheus.CounterVec

	// method, path
	HTTPRequestDuration *prometheus.HistogramVec

	// outcome: created, conflict, invalid_range, not_found, error
	ReservationsTotal *prometheus.CounterVec

	// status: PENDING, CONFIRMED, CANCELLED
	ReservationStatusChanges *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

func New() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	return newMetrics(reg, reg)
}

func newMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Total number of reservation attempts by outcome",
			},
			[]string{"outcome"},
		),
		ReservationStatusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservation_status_changes_total",
				Help: "Total number of reservation status writes by target status",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.ReservationStatusChanges,
	)

	return m
}

// Handler exposes the registry this instance was registered against.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// NewNop returns metrics registered against a throwaway registry.
func NewNop() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

func (m *Metrics) RecordReservation(outcome string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordStatusChange(status string) {
	if m == nil {
		return
	}
	m.ReservationStatusChanges.WithLabelValues(status).Inc()
}
