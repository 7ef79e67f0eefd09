// Package metrics exposes Prometheus instrumentation for the intake engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal counts classification calls by task and the source
	// that produced the returned label ("model", "rules", "default").
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_classifications_total",
			Help: "Total classification calls by task and winning source",
		},
		[]string{"task", "source"},
	)

	// FallbacksTotal counts learned predictions rejected by the confidence gate.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_classification_fallbacks_total",
			Help: "Learned predictions below the confidence threshold by task",
		},
		[]string{"task"},
	)

	// ClassificationLatency observes end-to-end classification latency per task.
	ClassificationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_classification_duration_seconds",
			Help:    "Classification latency by task",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		},
		[]string{"task"},
	)

	// TrainingDuration observes the duration of a full training pass per task.
	TrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_model_training_duration_seconds",
			Help:    "Model training duration by task",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"task"},
	)

	// ModelLoadsTotal counts persisted model loads by outcome ("loaded", "retrained").
	ModelLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_model_loads_total",
			Help: "Persisted model load attempts by task and outcome",
		},
		[]string{"task", "outcome"},
	)
)

// RecordClassification records one classification call.
func RecordClassification(task, source string, elapsed time.Duration) {
	ClassificationsTotal.WithLabelValues(task, source).Inc()
	ClassificationLatency.WithLabelValues(task).Observe(elapsed.Seconds())
}

// RecordFallback records a learned prediction rejected by the confidence gate.
func RecordFallback(task string) {
	FallbacksTotal.WithLabelValues(task).Inc()
}

// RecordTraining records the duration of one training pass.
func RecordTraining(task string, elapsed time.Duration) {
	TrainingDuration.WithLabelValues(task).Observe(elapsed.Seconds())
}

// RecordModelLoad records the outcome of a persisted-model load attempt.
func RecordModelLoad(task, outcome string) {
	ModelLoadsTotal.WithLabelValues(task, outcome).Inc()
}
