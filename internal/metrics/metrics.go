package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_cache_operation_duration_seconds",
			Help:    "Time to complete cache operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cache_name", "operation"},
	)

	CacheItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: Namespace + "_cache_items_total",
			Help: "Current number of items in cache",
		},
		[]string{"cache_name"},
	)

	ThreadsAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_threads_api_requests_total",
			Help: "Total number of Threads Graph API requests",
		},
		[]string{"path", "status"},
	)

	ThreadsAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_threads_api_request_duration_seconds",
			Help:    "Threads Graph API latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"path"},
	)

	FeedRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    Namespace + "_feed_refresh_duration_seconds",
			Help:    "Time to aggregate and publish the feed",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	FeedAccountFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_feed_account_failures_total",
			Help: "Accounts skipped during aggregation after exhausting retries",
		},
		[]string{"account"},
	)

	FeedThreads = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: Namespace + "_feed_threads",
			Help: "Threads in the last published dataset",
		},
		[]string{"dataset"},
	)

	ThreadDeletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_thread_deletions_total",
			Help: "Threads that disappeared from the upstream API between refreshes",
		},
	)

	AuthCallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_auth_callbacks_total",
			Help: "Login callbacks by outcome and error kind",
		},
		[]string{"outcome", "kind"},
	)

	IsLeader = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: Namespace + "_leader_is_leader",
			Help: "1 if this instance is the leader, 0 otherwise",
		},
	)
	LeadershipChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_leader_changes_total",
			Help: "Total number of leadership changes",
		})
)
