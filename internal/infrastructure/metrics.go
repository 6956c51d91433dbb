package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	AnalysesTotal     *prometheus.CounterVec
	IssuesFound       *prometheus.CounterVec
	NarrationFailures prometheus.Counter
	AnalysisDuration  prometheus.Histogram
}

// NewMetrics registers and returns the application metrics on the
// provided registerer. Pass prometheus.DefaultRegisterer in production;
// tests use a fresh registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crmkit_analyses_total",
			Help: "Total number of data quality analyses, labeled by outcome.",
		}, []string{"outcome"}),
		IssuesFound: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crmkit_issues_found_total",
			Help: "Total number of data quality issues found, labeled by severity.",
		}, []string{"severity"}),
		NarrationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "crmkit_narration_failures_total",
			Help: "Total number of failed narration (LLM) calls.",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "crmkit_analysis_duration_seconds",
			Help:    "Duration of data quality analysis runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
