package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeweaver_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codeweaver_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// generation pipeline
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeweaver_generations_total",
			Help: "Generation requests by outcome",
		},
		[]string{"outcome"},
	)

	GatewayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codeweaver_gateway_duration_seconds",
			Help:    "Latency of AI gateway calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2 minutes
		},
	)

	RateLimitDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeweaver_rate_limit_decisions_total",
			Help: "Per-user rate limit decisions",
		},
		[]string{"decision"},
	)

	// ledger
	CreditDebitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeweaver_credit_debits_total",
			Help: "Credit debit attempts by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)

	ReceiptWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codeweaver_receipt_write_failures_total",
			Help: "Receipts that could not be recorded",
		},
	)

	// packaging
	ArchiveSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codeweaver_archive_size_bytes",
			Help:    "Size of generated ZIP archives in bytes",
			Buckets: prometheus.ExponentialBuckets(512, 2, 12), // 512B to 1MB
		},
	)
)

// outcome labels
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeNoCredits     = "no_credits"
	OutcomeRateLimited   = "rate_limited"
	OutcomeUpstreamError = "upstream_error"
	OutcomeStoreError    = "store_error"
)
