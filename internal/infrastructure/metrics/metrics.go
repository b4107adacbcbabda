package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssistantReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rooted_assistant_replies_total",
			Help: "Total number of assistant replies by outcome",
		},
		[]string{"outcome"},
	)

	AssistantFarmsSuggested = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rooted_assistant_farms_suggested",
			Help:    "Number of farms suggested per assistant reply",
			Buckets: []float64{0, 1, 2, 3},
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rooted_cache_lookups_total",
			Help: "Total number of reply cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rooted_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rooted_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CatalogFarms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rooted_catalog_farms",
			Help: "Number of farms in the loaded catalog",
		},
	)
)

// Cache lookup results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)
