// Package metrics exposes Prometheus collectors for the HTTP surface, the
// completion API and document ingestion.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "docbot"

var (
	// CompletionRequestsTotal counts chat-completion calls by model and status
	// ("success" or "error").
	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_requests_total",
			Help:      "Total number of chat-completion API requests",
		},
		[]string{"model", "status"},
	)

	// CompletionRequestDuration observes successful chat-completion latency.
	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_request_duration_seconds",
			Help:      "Chat-completion API request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"model"},
	)

	// AnswersTotal counts answers by engine mode and outcome
	// ("answered", "not_found", "fallback").
	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Total number of answered questions",
		},
		[]string{"mode", "outcome"},
	)

	// DocumentsUploadedTotal counts uploads by extension and status
	// ("stored", "rejected", "error").
	DocumentsUploadedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_uploaded_total",
			Help:      "Total number of document uploads",
		},
		[]string{"extension", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		CompletionRequestsTotal,
		CompletionRequestDuration,
		AnswersTotal,
		DocumentsUploadedTotal,
	)
}
