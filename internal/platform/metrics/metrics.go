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

	"github.com/MrKriegler/insurance-premium/internal/core"
)

const namespace = "insurance"

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	applications       *prometheus.CounterVec
	validationFailures prometheus.Counter
	premiums           *prometheus.HistogramVec
	stored             *prometheus.GaugeVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		applications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "applications_total",
				Help:      "Total number of accepted insurance applications.",
			},
			[]string{"insurance_type"},
		),
		validationFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of rejected application requests.",
			},
		),
		premiums: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "premium_amount",
				Help:      "Calculated premium per accepted application.",
				Buckets:   []float64{2500, 5000, 7500, 10000, 12500, 15000},
			},
			[]string{"insurance_type"},
		),
		stored: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "applications_stored",
				Help:      "Number of application records in the store.",
			},
			[]string{"insurance_type"},
		),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "path"},
		),
	}

	m.registry.MustRegister(
		m.applications,
		m.validationFailures,
		m.premiums,
		m.stored,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveApplication records an accepted application and its premium.
func (m *Metrics) ObserveApplication(app core.Application) {
	if m == nil {
		return
	}
	it := string(app.InsuranceType)
	m.applications.WithLabelValues(it).Inc()
	m.premiums.WithLabelValues(it).Observe(float64(app.CalculatedPremium))
}

func (m *Metrics) ValidationFailed() {
	if m == nil {
		return
	}
	m.validationFailures.Inc()
}

// SetStored publishes per-type record counts. Types missing from counts are set to zero.
func (m *Metrics) SetStored(counts map[core.InsuranceType]int64) {
	if m == nil {
		return
	}
	for _, it := range core.InsuranceTypes {
		m.stored.WithLabelValues(string(it)).Set(float64(counts[it]))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
