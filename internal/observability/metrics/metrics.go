// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "meeting_analysis"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Job metrics
	JobsSubmitted prometheus.Counter
	JobsActive    prometheus.Gauge
	JobsCompleted prometheus.Counter
	JobsFailed    prometheus.Counter
	JobDuration   prometheus.Histogram

	// Pipeline stage metrics
	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec

	// Alignment metrics
	AlignedSegments prometheus.Counter

	// Aggregation degradation metrics
	AnalysisFallbacks *prometheus.CounterVec

	// Archive metrics
	ArchiveWrites prometheus.Counter
	ArchiveErrors prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// HTTP API metrics
	HTTPRequests       *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		JobsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_submitted_total",
			Help:      "Total number of analysis jobs accepted",
		}),
		JobsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jobs_active",
			Help:      "Number of pipeline tasks currently running",
		}),
		JobsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_completed_total",
			Help:      "Total number of jobs that finished successfully",
		}),
		JobsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_failed_total",
			Help:      "Total number of jobs that ended in a pipeline failure",
		}),
		JobDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "End-to-end duration of pipeline tasks in seconds",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}),

		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"stage"}),
		StageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Total number of stage failures",
		}, []string{"stage"}),

		AlignedSegments: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aligned_segments_total",
			Help:      "Total number of speaker-attributed segments produced",
		}),

		AnalysisFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_fallbacks_total",
			Help:      "Total number of degraded aggregation fields",
		}, []string{"field"}),

		ArchiveWrites: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_writes_total",
			Help:      "Total number of analysis snapshots written to disk",
		}),
		ArchiveErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archive_errors_total",
			Help:      "Total number of snapshot write failures",
		}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka publish attempts",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of failed Kafka publishes",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Latency of Kafka publishes in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"topic", "event_type"}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP API requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_latency_seconds",
			Help:      "Latency of HTTP API requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method", "route"}),
	}
}

// RecordJobStart tracks a newly spawned pipeline task.
func (m *Metrics) RecordJobStart() {
	m.JobsSubmitted.Inc()
	m.JobsActive.Inc()
}

// RecordJobEnd tracks a terminal job transition.
func (m *Metrics) RecordJobEnd(success bool, seconds float64) {
	m.JobsActive.Dec()
	m.JobDuration.Observe(seconds)
	if success {
		m.JobsCompleted.Inc()
	} else {
		m.JobsFailed.Inc()
	}
}

// RecordStage tracks one pipeline stage invocation.
func (m *Metrics) RecordStage(stage string, err error, seconds float64) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
	if err != nil {
		m.StageErrors.WithLabelValues(stage).Inc()
	}
}

// RecordKafkaPublish tracks one publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, seconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic, eventType).Observe(seconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}

// RecordHTTPRequest tracks one API request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, seconds float64) {
	m.HTTPRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.HTTPRequestLatency.WithLabelValues(method, route).Observe(seconds)
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
