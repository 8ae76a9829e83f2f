package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// Metrics holds the Prometheus collectors for calculations and the HTTP API.
// It implements calculation.Observer.
type Metrics struct {
	// Calculations
	Calculations  *prometheus.CounterVec
	TDSDeducted   *prometheus.CounterVec
	InterestDue   *prometheus.CounterVec
	LatePayments  *prometheus.CounterVec
	BatchRows     prometheus.Histogram
	BatchDuration prometheus.Histogram

	// HTTP
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// means a fresh private registry, which keeps tests and multiple servers apart.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = "tds"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	m := &Metrics{
		// =======================================================================
		// Calculations
		// =======================================================================
		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Total transactions assessed, by section and outcome",
			},
			[]string{"section", "status"},
		),
		TDSDeducted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deducted_rupees_total",
				Help:      "Total TDS computed in rupees",
			},
			[]string{"section"},
		),
		InterestDue: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "interest_rupees_total",
				Help:      "Total late-deposit interest computed in rupees",
			},
			[]string{"section"},
		),
		LatePayments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "late_payments_total",
				Help:      "Transactions deposited after the due date",
			},
			[]string{"section"},
		),
		BatchRows: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "bulk_rows",
				Help:      "Rows per bulk batch",
				Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
			},
		),
		BatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "bulk_duration_seconds",
				Help:      "Time to calculate one bulk batch",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
			},
		),

		// =======================================================================
		// HTTP
		// =======================================================================
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		gatherer: reg,
	}
	return m
}

// ObserveResult records one calculated transaction
func (m *Metrics) ObserveResult(r domain.CalculationResult) {
	if r.IsError() {
		// raw codes and parse messages would explode the label space
		status := "Processing Error"
		if r.IsInvalidSection() {
			status = "Invalid Section"
		}
		m.Calculations.WithLabelValues("unknown", status).Inc()
		return
	}

	section := r.Section
	m.Calculations.WithLabelValues(section, r.Status).Inc()
	m.TDSDeducted.WithLabelValues(section).Add(r.TDSAmount.InexactFloat64())
	if r.IsLate {
		m.LatePayments.WithLabelValues(section).Inc()
		m.InterestDue.WithLabelValues(section).Add(r.Interest.InexactFloat64())
	}
}

// ObserveBatch records the size and duration of a bulk batch
func (m *Metrics) ObserveBatch(rows int, elapsed time.Duration) {
	m.BatchRows.Observe(float64(rows))
	m.BatchDuration.Observe(elapsed.Seconds())
}

// ObserveRequest records one HTTP request. path is the route pattern, not the raw URL.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.RequestsTotal.WithLabelValues(method, path, code).Inc()
	m.RequestDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// Handler returns the Prometheus exposition handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
