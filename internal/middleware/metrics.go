package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitbook_http_requests_total",
			Help: "Number of HTTP requests handled, by route and status.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "splitbook_http_request_duration_seconds",
			Help:    "HTTP request latency, by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Metrics records request counts and latencies per route.
func Metrics() gin.HandlerFunc {
	return func(gctx *gin.Context) {
		start := time.Now()

		gctx.Next()

		route := gctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		requestsTotal.WithLabelValues(
			gctx.Request.Method, route, strconv.Itoa(gctx.Writer.Status()),
		).Inc()
		requestDuration.WithLabelValues(
			gctx.Request.Method, route,
		).Observe(time.Since(start).Seconds())
	}
}
