// Package metrics registers the Prometheus collectors for the measurement API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector so tests can use a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests          *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	LocationsCreated  prometheus.Counter
	FloorsSkipped     prometheus.Counter
	FloorsDeleted     prometheus.Counter
	AssignmentBatches *prometheus.CounterVec
	MeasurementSaves  prometheus.Counter
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "obra_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "obra_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		LocationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "obra_locations_created_total",
			Help: "Locations inserted by generation requests.",
		}),
		FloorsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "obra_floors_skipped_total",
			Help: "Floors skipped by generation because they already existed.",
		}),
		FloorsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "obra_floors_deleted_total",
			Help: "Floor deletions that removed at least one location.",
		}),
		AssignmentBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "obra_assignment_batches_total",
			Help: "Assignment batch commits by outcome.",
		}, []string{"outcome"}),
		MeasurementSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "obra_measurement_batches_total",
			Help: "Measurement batches persisted.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests, m.RequestDuration,
		m.LocationsCreated, m.FloorsSkipped, m.FloorsDeleted,
		m.AssignmentBatches, m.MeasurementSaves,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
