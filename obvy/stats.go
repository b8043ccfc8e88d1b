package pisano

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsInternal is the process-local prometheus registry,
// served on the data endpoint at /metrics.
type StatsInternal struct {
	Registry     *prometheus.Registry
	Analyses     prometheus.Counter
	AnalysisTime prometheus.Histogram
	Exports      *prometheus.CounterVec
	WWW          *prometheus.CounterVec
}

func NewStatsInternal() *StatsInternal {
	reg := prometheus.NewRegistry()

	s := &StatsInternal{
		Registry: reg,
		Analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pisano_analyses_total",
			Help: "Completed period analyses.",
		}),
		AnalysisTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pisano_analysis_duration_seconds",
			Help:    "Time spent in one full period analysis.",
			Buckets: prometheus.DefBuckets,
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pisano_exports_total",
			Help: "Export writes by adapter type.",
		}, []string{"format"}),
		WWW: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pisano_http_requests_total",
			Help: "Data endpoint requests by status and method.",
		}, []string{"code", "method"}),
	}

	reg.MustRegister(s.Analyses, s.AnalysisTime, s.Exports, s.WWW)
	return s
}

// RecAnalysis records one analysis and its duration in seconds.
func (s *StatsInternal) RecAnalysis(duration float64) {
	s.Analyses.Inc()
	s.AnalysisTime.Observe(duration)
}

// RecExport records one export by adapter type.
func (s *StatsInternal) RecExport(format string) {
	s.Exports.WithLabelValues(format).Inc()
}

// RecWWW records one data endpoint request.
func (s *StatsInternal) RecWWW(code, method string) {
	s.WWW.WithLabelValues(code, method).Inc()
}

// Handler serves this registry only, not the global one.
func (s *StatsInternal) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})
}
