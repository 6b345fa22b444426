package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// trend-analysis pipeline.
type Metrics struct {
	PagesFetched     prometheus.Counter
	FetchErrors      prometheus.Counter
	ParseErrors      prometheus.Counter
	RecordsExtracted prometheus.Counter

	AnalysesCompleted prometheus.Counter
	AnalysisDuration  prometheus.Histogram
	PipelineReady     prometheus.Gauge

	// Trend sink metrics.
	TrendPointsPublished prometheus.Counter
	SinkErrors           prometheus.Counter
	SinkEnabled          prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_trend",
			Name:      "pages_fetched_total",
			Help:      "Total region pages successfully fetched from the source site.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_trend",
			Name:      "fetch_errors_total",
			Help:      "Total region page fetch failures.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_trend",
			Name:      "parse_errors_total",
			Help:      "Total extraction failures from unexpected page structure or counts.",
		}),
		RecordsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_trend",
			Name:      "records_extracted_total",
			Help:      "Total sighting records extracted from region pages.",
		}),
		AnalysesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_trend",
			Name:      "analyses_completed_total",
			Help:      "Total completed region trend analyses.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bird_trend",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete fetch-extract-aggregate analysis.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PipelineReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bird_trend",
			Name:      "pipeline_ready",
			Help:      "1 once the pipeline has completed at least one analysis.",
		}),
		TrendPointsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_trend",
			Name:      "trend_points_published_total",
			Help:      "Total trend points published to the sink topic.",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bird_trend",
			Name:      "sink_errors_total",
			Help:      "Total trend sink publish failures.",
		}),
		SinkEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bird_trend",
			Name:      "sink_enabled",
			Help:      "1 when the Kafka trend sink is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.PagesFetched,
		m.FetchErrors,
		m.ParseErrors,
		m.RecordsExtracted,
		m.AnalysesCompleted,
		m.AnalysisDuration,
		m.PipelineReady,
		m.TrendPointsPublished,
		m.SinkErrors,
		m.SinkEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PagesFetched:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bird_trend", Name: "pages_fetched_total"}),
		FetchErrors:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bird_trend", Name: "fetch_errors_total"}),
		ParseErrors:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bird_trend", Name: "parse_errors_total"}),
		RecordsExtracted:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bird_trend", Name: "records_extracted_total"}),
		AnalysesCompleted:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bird_trend", Name: "analyses_completed_total"}),
		AnalysisDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "bird_trend", Name: "analysis_duration_seconds"}),
		PipelineReady:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bird_trend", Name: "pipeline_ready"}),
		TrendPointsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bird_trend", Name: "trend_points_published_total"}),
		SinkErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "bird_trend", Name: "sink_errors_total"}),
		SinkEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "bird_trend", Name: "sink_enabled"}),
	}
}
