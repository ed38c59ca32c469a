package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts finished requests per route template.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventboard_http_requests_total",
			Help: "The total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eventboard_http_request_duration_seconds",
			Help:    "The duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthDecisions counts auth gate outcomes: authenticated, missing, invalid.
	AuthDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventboard_auth_decisions_total",
			Help: "The total number of auth gate decisions by outcome",
		},
		[]string{"outcome"},
	)
)
