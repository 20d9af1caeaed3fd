package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookmarks_http_request_duration_seconds",
		Help:    "Time from request receipt to response.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	BookmarkOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_operations_total",
		Help: "Bookmark access layer calls by operation and outcome (ok, denied, error).",
	}, []string{"op", "outcome"})

	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_auth_failures_total",
		Help: "Rejected bearer token authentications by reason.",
	}, []string{"reason"})

	TokensIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_tokens_issued_total",
		Help: "API tokens issued over HTTP by source (signup, signin).",
	}, []string{"source"})
)
