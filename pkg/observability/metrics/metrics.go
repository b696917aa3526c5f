package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClassificationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_classification_total",
			Help: "Number of ticket classifications by final method",
		},
		[]string{"method"},
	)

	ClassificationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticket_classification_duration_seconds",
			Help:    "Latency of ticket classification requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	FallbackCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_classification_fallback_total",
			Help: "Number of fallbacks from a failed component to the next cheaper one",
		},
		[]string{"from", "to"},
	)

	BackendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticket_backend_request_duration_seconds",
			Help:    "Latency of external inference backend calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"backend", "status"},
	)

	SentimentCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_analysis_total",
			Help: "Number of sentiment analyses by method and resulting label",
		},
		[]string{"method", "label"},
	)

	EscalationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_escalation_total",
			Help: "Number of escalation checks by outcome",
		},
		[]string{"escalated"},
	)

	TrainingCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statistical_model_training_total",
			Help: "Number of statistical model training runs by status",
		},
		[]string{"status"},
	)
)

// RecordClassification records one completed ticket classification.
func RecordClassification(method string, seconds float64) {
	ClassificationCounter.WithLabelValues(method).Inc()
	ClassificationLatency.WithLabelValues(method).Observe(seconds)
}

// RecordFallback records a degradation step in the fallback chain.
func RecordFallback(from, to string) {
	FallbackCounter.WithLabelValues(from, to).Inc()
}

// RecordBackendRequest records one external backend call.
func RecordBackendRequest(backend, status string, seconds float64) {
	BackendLatency.WithLabelValues(backend, status).Observe(seconds)
}

// RecordSentiment records one sentiment analysis.
func RecordSentiment(method, label string) {
	SentimentCounter.WithLabelValues(method, label).Inc()
}

// RecordEscalationCheck records one escalation decision.
func RecordEscalationCheck(escalated bool) {
	if escalated {
		EscalationCounter.WithLabelValues("true").Inc()
	} else {
		EscalationCounter.WithLabelValues("false").Inc()
	}
}

// RecordTraining records one training run outcome.
func RecordTraining(status string) {
	TrainingCounter.WithLabelValues(status).Inc()
}
