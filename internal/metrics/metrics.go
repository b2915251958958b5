// Package metrics exposes prometheus collectors for the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by route and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkpreview_requests_total",
		Help: "HTTP requests handled, by route and status code.",
	}, []string{"route", "status"})

	// RequestDuration observes handler latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linkpreview_request_duration_seconds",
		Help:    "HTTP request latency, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// CacheEvents counts hits, misses, and negative hits per cache.
	CacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkpreview_cache_events_total",
		Help: "Cache events, by cache name and event kind.",
	}, []string{"cache", "event"})

	// ExtractionFallbacks counts metadata requests that degraded to the
	// fallback record.
	ExtractionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkpreview_extraction_fallbacks_total",
		Help: "Metadata extractions that served the degraded fallback record.",
	})
)

// Middleware records per-request counters and latency.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the prometheus exposition endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
