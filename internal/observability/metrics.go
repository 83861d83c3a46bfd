package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// advisability service.
type Metrics struct {
	Assessments        *prometheus.CounterVec   // labels: model
	AssessmentErrors   *prometheus.CounterVec   // labels: reason={dataset,days,hour,model,other}
	AdvisabilityScore  *prometheus.HistogramVec // labels: model
	AssessmentDuration prometheus.Histogram

	// Assessment cache metrics.
	AssessmentCache *prometheus.CounterVec // labels: result={hit,miss}

	// Publishing metrics.
	AssessmentsPublished prometheus.Counter
	PublishErrors        prometheus.Counter

	DatasetRecords prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()

	prometheus.MustRegister(
		m.Assessments,
		m.AssessmentErrors,
		m.AdvisabilityScore,
		m.AssessmentDuration,
		m.AssessmentCache,
		m.AssessmentsPublished,
		m.PublishErrors,
		m.DatasetRecords,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "event_advisor",
			Name:      "assessments_total",
			Help:      "Advisability assessments computed, by prediction model.",
		}, []string{"model"}),
		AssessmentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "event_advisor",
			Name:      "assessment_errors_total",
			Help:      "Assessments rejected, by reason.",
		}, []string{"reason"}),
		AdvisabilityScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "event_advisor",
			Name:      "advisability_score",
			Help:      "Distribution of advisability scores.",
			Buckets:   []float64{-4, -3, -2, -1, 0, 1, 2, 3, 4, 5},
		}, []string{"model"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "event_advisor",
			Name:      "assessment_duration_seconds",
			Help:      "Time to build a prediction and score it.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		AssessmentCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "event_advisor",
			Name:      "assessment_cache_total",
			Help:      "Assessment cache lookups by result.",
		}, []string{"result"}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "event_advisor",
			Name:      "assessments_published_total",
			Help:      "Assessments written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "event_advisor",
			Name:      "publish_errors_total",
			Help:      "Failed writes to the sink topic.",
		}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "event_advisor",
			Name:      "dataset_records",
			Help:      "Daily weather records loaded into memory.",
		}),
	}
}
