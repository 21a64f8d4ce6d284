// Package metrics defines the Prometheus instruments exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tessera_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tessera_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tessera_resolutions_total",
		Help: "Compound prompt resolutions by outcome",
	}, []string{"status"})

	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tessera_validation_failures_total",
		Help: "Component validation failures by kind",
	}, []string{"kind"})

	ModerationDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tessera_moderation_decisions_total",
		Help: "Moderation decisions by outcome",
	}, []string{"decision"})
)
