// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors register with the default registry once, at package init.
var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickr_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		},
		[]string{"route", "code"},
	)
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickr_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	comparisonsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickr_comparisons_recorded_total",
			Help: "Comparisons recorded by ranking algorithm.",
		},
		[]string{"algorithm"},
	)
	sessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickr_sessions_started_total",
			Help: "Ranking sessions started by algorithm.",
		},
		[]string{"algorithm"},
	)
	sessionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickr_sessions_completed_total",
			Help: "Ranking sessions completed by algorithm.",
		},
		[]string{"algorithm"},
	)
)

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveRequest(route string, code int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func ComparisonRecorded(algorithm string) {
	comparisonsRecorded.WithLabelValues(algorithm).Inc()
}

func SessionStarted(algorithm string) {
	sessionsStarted.WithLabelValues(algorithm).Inc()
}

func SessionCompleted(algorithm string) {
	sessionsCompleted.WithLabelValues(algorithm).Inc()
}
