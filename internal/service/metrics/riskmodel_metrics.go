package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	RiskModelLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "macropulse",
			Subsystem: "riskmodel",
			Name:      "latency_seconds",
			Help:      "Latency of risk model requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	RiskModelErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "macropulse",
			Subsystem: "riskmodel",
			Name:      "errors_total",
			Help:      "Errors by risk model endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(RiskModelLatency, RiskModelErrors)
	})
}
