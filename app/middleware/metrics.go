package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buyback_http_requests_total",
		Help: "Total HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "buyback_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "buyback_http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	})

	// SyncRunsTotal counts pricing and inventory sync runs by outcome.
	SyncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buyback_sync_runs_total",
		Help: "Sync runs by source and status.",
	}, []string{"source", "status"})
)

// Metrics records request counts, latency and in-flight gauge per route.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		err := c.Next()

		// Route pattern, not the raw path, to keep label cardinality bounded.
		path := c.Route().Path
		status := c.Response().StatusCode()
		httpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
