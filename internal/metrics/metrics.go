package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ForecastAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteodash_forecast_api_calls_total",
			Help: "Total forecast API calls",
		},
		[]string{"status"},
	)

	GeocodeAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteodash_geocode_api_calls_total",
			Help: "Total geocoding API calls",
		},
		[]string{"status"},
	)

	CacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteodash_cache_events_total",
			Help: "Snapshot cache lookups by outcome",
		},
		[]string{"event"},
	)

	ResolveLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meteodash_resolve_latency_seconds",
			Help:    "Location resolution latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meteodash_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"path", "status"},
	)
)
