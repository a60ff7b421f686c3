package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchDuration  *prometheus.HistogramVec
	errorsTotal    *prometheus.CounterVec
	indicatorValue *prometheus.GaugeVec
	regimeCurrent  *prometheus.GaugeVec
	transitions    *prometheus.CounterVec
	alerts         *prometheus.CounterVec
	opLatency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macropulse_fetch_duration_seconds",
				Help:    "Duration of upstream indicator history fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"indicator"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		indicatorValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropulse_indicator_value",
				Help: "Last observed value per indicator",
			},
			[]string{"indicator"},
		),
		regimeCurrent: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropulse_regime",
				Help: "Current market regime (1 for the active regime, 0 otherwise)",
			},
			[]string{"regime"},
		),
		transitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_regime_transitions_total",
				Help: "Total confirmed regime transitions",
			},
			[]string{"from", "to"},
		),
		alerts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_alerts_total",
				Help: "Regime alerts by delivery outcome",
			},
			[]string{"outcome"},
		),
		opLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macropulse_op_latency_seconds",
				Help:    "Latency of internal operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
}

// RecordFetch records the duration of one upstream history fetch.
func (r *Recorder) RecordFetch(indicator string, seconds float64) {
	r.fetchDuration.WithLabelValues(indicator).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordIndicatorValue records the latest reading for an indicator.
func (r *Recorder) RecordIndicatorValue(indicator string, value float64) {
	r.indicatorValue.WithLabelValues(indicator).Set(value)
}

// RecordRegime marks the active regime gauge.
func (r *Recorder) RecordRegime(regime string) {
	for _, known := range []string{"risk_on", "risk_off", "mixed", "no_data"} {
		v := 0.0
		if known == regime {
			v = 1
		}
		r.regimeCurrent.WithLabelValues(known).Set(v)
	}
}

// RecordTransition counts a confirmed regime transition.
func (r *Recorder) RecordTransition(from, to string) {
	r.transitions.WithLabelValues(from, to).Inc()
}

// RecordAlert counts an alert by delivery outcome.
func (r *Recorder) RecordAlert(outcome string) {
	r.alerts.WithLabelValues(outcome).Inc()
}

// RecordLatency records the duration of an internal operation.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.opLatency.WithLabelValues(op).Observe(seconds)
}
