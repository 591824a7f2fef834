package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fitcoach_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_errors_total",
			Help: "Total app errors",
		},
		[]string{"handler", "type"},
	)

	// Domain counters for the aggregation layer.
	RoutineUpserts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_routine_upserts_total",
			Help: "Routine create/replace operations",
		},
		[]string{"mode"}, // create | update
	)

	CatalogResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_catalog_resolutions_total",
			Help: "Exercise catalog resolutions by outcome",
		},
		[]string{"outcome"}, // by_id | by_name | created | race_retry
	)

	SessionsLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcoach_sessions_logged_total",
			Help: "Workout sessions logged by clients",
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(
		ReqCount, ReqDuration, ErrorCount,
		RoutineUpserts, CatalogResolutions, SessionsLogged,
	)
}
