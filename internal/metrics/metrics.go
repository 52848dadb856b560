package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	InboxQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_inbox_queries_total",
			Help: "Total inbox listings served",
		},
		[]string{"state"}, // "entries", "no_conversations" or "no_match"
	)

	ThreadViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_thread_views_total",
			Help: "Total threads assembled",
		},
	)

	DraftsPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_drafts_posted_total",
			Help: "Total messages composed (logged, not persisted)",
		},
	)

	IntegrityIssues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_integrity_issues_total",
			Help: "Data-integrity conditions found while building views",
		},
		[]string{"kind"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"}, // "success" or "failure"
	)
)
