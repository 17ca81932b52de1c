package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics for report generation and HTTP traffic.
type Metrics struct {
	ReportDuration *prometheus.HistogramVec
	ReportsTotal   *prometheus.CounterVec
	RowsNormalized prometheus.Counter
	ErrorsTotal    *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		ReportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tradeledger_report_duration_seconds",
			Help:    "Time to load, normalize and aggregate a report",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"report"}),

		ReportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeledger_reports_total",
			Help: "Reports generated by kind and outcome",
		}, []string{"report", "outcome"}),

		RowsNormalized: f.NewCounter(prometheus.CounterOpts{
			Name: "tradeledger_rows_normalized_total",
			Help: "Ledger rows that survived normalization",
		}),

		ErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeledger_errors_total",
			Help: "Errors by component and kind",
		}, []string{"component", "error_kind"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeledger_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tradeledger_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveReport records the outcome and latency of one report computation.
func (m *Metrics) ObserveReport(report string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ReportDuration.WithLabelValues(report).Observe(elapsed.Seconds())
	m.ReportsTotal.WithLabelValues(report, outcome).Inc()
}

// AddRowsNormalized adds n rows to the normalized counter.
func (m *Metrics) AddRowsNormalized(n int) {
	m.RowsNormalized.Add(float64(n))
}

// RecordError increments the error counter.
func (m *Metrics) RecordError(component, kind string) {
	m.ErrorsTotal.WithLabelValues(component, kind).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, method, status string, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
