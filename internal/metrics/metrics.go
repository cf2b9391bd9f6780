// Package metrics exposes the Prometheus instrumentation of the MyLists server.
package metrics

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DBQueryDuration tracks SQLite statement latency.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mylists_db_query_duration_seconds",
			Help:    "Duration of SQLite queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mylists_db_query_errors_total",
			Help: "Total number of failed SQLite queries",
		},
		[]string{"operation", "table", "error_type"},
	)

	// ListQueriesTotal counts media list queries by outcome.
	ListQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mylists_list_queries_total",
			Help: "Total number of media list queries",
		},
		[]string{"media_type", "mode", "outcome"}, // outcome: ok, invalid, error
	)

	ListQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mylists_list_query_duration_seconds",
			Help:    "End-to-end duration of media list queries in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"media_type", "mode"},
	)

	ListQueryRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mylists_list_query_rows",
			Help:    "Rows returned per media list page",
			Buckets: []float64{0, 1, 6, 12, 24, 36},
		},
		[]string{"media_type", "mode"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mylists_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mylists_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mylists_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	}
}

// RecordListQuery records one media list query.
func RecordListQuery(mediaType, mode, outcome string, rows int, duration time.Duration) {
	ListQueriesTotal.WithLabelValues(mediaType, mode, outcome).Inc()
	if outcome != "ok" {
		return
	}
	ListQueryDuration.WithLabelValues(mediaType, mode).Observe(duration.Seconds())
	ListQueryRows.WithLabelValues(mediaType, mode).Observe(float64(rows))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateLimited counts a request rejected with 429.
func RecordRateLimited(route string) {
	RateLimitedTotal.WithLabelValues(route).Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// errorType keeps the error label bounded.
func errorType(err error) string {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "no_rows"
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone):
		return "connection"
	default:
		return "query"
	}
}
