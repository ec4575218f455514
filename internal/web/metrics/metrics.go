// Package metrics объявляет метрики Prometheus веб-сервера.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notehub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notehub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notehub_http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Session gate
	GateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notehub_gate_decisions_total",
			Help: "Session gate decisions by outcome",
		},
		[]string{"outcome", "reason"},
	)

	// Cache
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notehub_cache_lookups_total",
			Help: "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"}, // hit, miss, error
	)

	// Remote API
	RemoteErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notehub_remote_errors_total",
			Help: "Failed remote API operations",
		},
		[]string{"operation"},
	)
)

// Результаты обращения к кэшу.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// TrackGateDecision учитывает решение гейта сессии.
func TrackGateDecision(outcome, reason string) {
	GateDecisionsTotal.WithLabelValues(outcome, reason).Inc()
}

// TrackCacheLookup учитывает обращение к кэшу.
func TrackCacheLookup(cache, result string) {
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// TrackRemoteError учитывает неудачный вызов удаленного API.
func TrackRemoteError(operation string) {
	RemoteErrorsTotal.WithLabelValues(operation).Inc()
}
