package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	// riskEvaluations counts GTC-45 evaluations.
	// Labels: tier (I, II, III, IV, incomplete, invalid)
	riskEvaluations *prometheus.CounterVec

	// complianceEvaluations counts compliance roll-ups.
	// Labels: endpoint (score, autoevaluation, bracket)
	complianceEvaluations *prometheus.CounterVec

	// requestDuration measures handler latency.
	// Labels: method, route, status
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		riskEvaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sgsst",
			Name:      "risk_evaluations_total",
			Help:      "Total GTC-45 risk evaluations by resulting tier",
		}, []string{"tier"}),
		complianceEvaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sgsst",
			Name:      "compliance_evaluations_total",
			Help:      "Total compliance evaluations by endpoint",
		}, []string{"endpoint"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sgsst",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}
}
