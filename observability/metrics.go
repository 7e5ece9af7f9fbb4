// Package observability instruments lenses with Prometheus metrics and
// structured logs.
package observability

import (
	"time"

	lenserr "github.com/obrok/lens/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeMissing = "missing"
	outcomeError   = "error"
)

// missing reports errors raised by strict lookups on absent data, as opposed
// to lenses applied to the wrong shape or misused.
func missing(err error) bool {
	return lenserr.IsCode(err, lenserr.ErrCodeKeyNotFound) ||
		lenserr.IsCode(err, lenserr.ErrCodeIndexOutOfRange)
}

// Metrics holds Prometheus metrics for lens evaluations.
type Metrics struct {
	evaluationsTotal *prometheus.CounterVec
	fociTotal        *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	duration         *prometheus.HistogramVec
}

// NewMetrics creates lens metrics and registers them with registry when it is
// not nil.
func NewMetrics(namespace string, registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lens_evaluations_total",
				Help:      "Total number of lens evaluations by outcome (success, missing, error)",
			},
			[]string{"lens", "outcome"},
		),
		fociTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lens_foci_total",
				Help:      "Total number of values focused by successful evaluations",
			},
			[]string{"lens"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lens_errors_total",
				Help:      "Total number of failed lens evaluations by error code",
			},
			[]string{"lens", "error_code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "lens_evaluation_duration_seconds",
				Help:      "Lens evaluation latency in seconds",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"lens"},
		),
	}

	if registry != nil {
		registry.MustRegister(
			m.evaluationsTotal,
			m.fociTotal,
			m.errorsTotal,
			m.duration,
		)
	}
	return m
}

// RecordEvaluation records one evaluation of the lens called name.
func (m *Metrics) RecordEvaluation(name string, foci int, err error, elapsed time.Duration) {
	m.duration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		outcome := outcomeError
		if missing(err) {
			outcome = outcomeMissing
		}
		m.evaluationsTotal.WithLabelValues(name, outcome).Inc()
		m.errorsTotal.WithLabelValues(name, string(lenserr.GetCode(err))).Inc()
		return
	}
	m.evaluationsTotal.WithLabelValues(name, outcomeSuccess).Inc()
	m.fociTotal.WithLabelValues(name).Add(float64(foci))
}

// EvaluationsTotal returns the evaluations counter.
func (m *Metrics) EvaluationsTotal() *prometheus.CounterVec {
	return m.evaluationsTotal
}

// FociTotal returns the foci counter.
func (m *Metrics) FociTotal() *prometheus.CounterVec {
	return m.fociTotal
}

// ErrorsTotal returns the errors counter.
func (m *Metrics) ErrorsTotal() *prometheus.CounterVec {
	return m.errorsTotal
}

// Duration returns the latency histogram.
func (m *Metrics) Duration() *prometheus.HistogramVec {
	return m.duration
}
