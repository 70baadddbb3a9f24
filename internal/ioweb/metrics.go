package ioweb

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics keeps Prometheus collectors of the HTTP API.
type Metrics struct {
	// Verdicts counts analysis results by verdict and text source.
	Verdicts *prometheus.CounterVec

	// AnalyzeLatency is the duration of text analysis.
	AnalyzeLatency prometheus.Histogram

	// FetchLatency is the duration of product lookups by barcode,
	// cache included.
	FetchLatency prometheus.Histogram

	reg *prometheus.Registry
}

// NewMetrics creates collectors in their own registry, so several servers
// can live in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrigrade_verdicts_total",
			Help: "Total analysis verdicts by verdict and source",
		}, []string{"verdict", "source"}),

		AnalyzeLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nutrigrade_analyze_duration_seconds",
			Help:    "Duration of ingredients text analysis",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}),

		FetchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nutrigrade_off_fetch_duration_seconds",
			Help:    "Duration of product lookups in Open Food Facts",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		reg: reg,
	}
}

// ObserveVerdict records a verdict of one analysis.
func (m *Metrics) ObserveVerdict(verdict, source string) {
	if m != nil {
		m.Verdicts.WithLabelValues(verdict, source).Inc()
	}
}

// ObserveAnalyze records the duration of one analysis.
func (m *Metrics) ObserveAnalyze(d time.Duration) {
	if m != nil {
		m.AnalyzeLatency.Observe(d.Seconds())
	}
}

// ObserveFetch records the duration of one product lookup.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m != nil {
		m.FetchLatency.Observe(d.Seconds())
	}
}

// Registry returns the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}
