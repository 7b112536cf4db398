package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records completion call outcomes. Abstracted so tests can
// inject a mock instead of the Prometheus registry.
type MetricsRecorder interface {
	// RecordLength records the length of a generated summary in runes.
	RecordLength(length int)

	// RecordDuration records how long the completion call took.
	RecordDuration(provider string, duration time.Duration)

	// RecordFailure counts a failed completion call by error kind.
	RecordFailure(provider, kind string)
}

// PrometheusMetrics is the production MetricsRecorder.
type PrometheusMetrics struct {
	length   prometheus.Histogram
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

var (
	metricsInstance *PrometheusMetrics
	metricsOnce     sync.Once
)

// NewPrometheusMetrics returns the process-wide metrics recorder. A
// singleton keeps repeated construction in tests from tripping duplicate
// registration.
func NewPrometheusMetrics() *PrometheusMetrics {
	metricsOnce.Do(func() {
		metricsInstance = &PrometheusMetrics{
			length: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "quickwiki_summary_length_characters",
				Help:    "Distribution of summary lengths in characters (Unicode runes)",
				Buckets: []float64{100, 250, 500, 750, 1000, 1500, 2500},
			}),
			duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "quickwiki_summarization_duration_seconds",
				Help:    "Time taken by a single completion API call",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			}, []string{"provider"}),
			failures: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "quickwiki_summarization_failures_total",
				Help: "Failed completion calls by provider and error kind",
			}, []string{"provider", "kind"}),
		}
	})
	return metricsInstance
}

func (p *PrometheusMetrics) RecordLength(length int) {
	p.length.Observe(float64(length))
}

func (p *PrometheusMetrics) RecordDuration(provider string, duration time.Duration) {
	p.duration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) RecordFailure(provider, kind string) {
	p.failures.WithLabelValues(provider, kind).Inc()
}
