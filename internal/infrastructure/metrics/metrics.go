package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spur",
			Subsystem: "chat_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "spur",
			Subsystem: "chat_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Turn outcomes
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spur",
			Subsystem: "chat_api",
			Name:      "turns_total",
			Help:      "Total chat turns by outcome",
		},
		[]string{"outcome"},
	)

	// Reply cache lookups
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spur",
			Subsystem: "chat_api",
			Name:      "cache_lookups_total",
			Help:      "Reply cache lookups by result",
		},
		[]string{"result"},
	)

	// Generation latency
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "spur",
			Subsystem: "chat_api",
			Name:      "generation_duration_seconds",
			Help:      "LLM reply generation duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 75},
		},
		[]string{"status"},
	)
)

// RecordRequest records an HTTP request.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordTurn records a chat turn outcome.
func RecordTurn(outcome string) {
	TurnsTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup records a reply cache lookup result.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveGeneration records one generation attempt.
func ObserveGeneration(durationSec float64, ok bool) {
	status := "error"
	if ok {
		status = "ok"
	}
	GenerationDuration.WithLabelValues(status).Observe(durationSec)
}
