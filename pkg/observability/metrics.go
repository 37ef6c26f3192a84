package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/aniame/pkg/validator"
)

const namespace = "aniame"

// Result label values.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics records validation outcomes.
type Metrics struct {
	validations *prometheus.CounterVec
	errorPaths  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of validations by schema and result",
			},
			[]string{"schema", "result"},
		),
		errorPaths: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_errors_total",
				Help:      "Total number of reported error paths by schema and reason",
			},
			[]string{"schema", "reason"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Duration of validations",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"schema"},
		),
	}
	for _, c := range []prometheus.Collector{m.validations, m.errorPaths, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one validation. A nil outcome counts as a failed run.
func (m *Metrics) Observe(schemaName string, outcome *validator.Outcome, dur time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(schemaName).Observe(dur.Seconds())

	switch {
	case outcome == nil:
		m.validations.WithLabelValues(schemaName, ResultError).Inc()
	case outcome.Success():
		m.validations.WithLabelValues(schemaName, ResultValid).Inc()
	default:
		m.validations.WithLabelValues(schemaName, ResultInvalid).Inc()
		for _, e := range outcome.Errors {
			m.errorPaths.WithLabelValues(schemaName, string(e.Reason)).Inc()
		}
	}
}
