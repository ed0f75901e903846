package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_widget",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weather_widget",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// Lookup metrics
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_widget",
		Subsystem: "lookup",
		Name:      "total",
		Help:      "City lookups by outcome",
	}, []string{"outcome"})

	lookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "weather_widget",
		Subsystem: "lookup",
		Name:      "duration_seconds",
		Help:      "End-to-end geocode and forecast latency",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weather_widget",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to upstream weather APIs",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"provider", "result"})

	StaleRendersDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "weather_widget",
		Subsystem: "widget",
		Name:      "stale_renders_dropped_total",
		Help:      "Workflow updates discarded because a newer submission started",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "weather_widget",
		Subsystem: "session",
		Name:      "active",
		Help:      "Widget sessions currently held in memory",
	})

	SessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "weather_widget",
		Subsystem: "session",
		Name:      "evicted_total",
		Help:      "Widget sessions removed by age or capacity",
	})
)

// ObserveLookup records one lookup.
func ObserveLookup(outcome string, d time.Duration) {
	lookupsTotal.WithLabelValues(outcome).Inc()
	lookupDuration.Observe(d.Seconds())
}

// ObserveUpstream records one upstream HTTP call.
func ObserveUpstream(provider string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	upstreamDuration.WithLabelValues(provider, result).Observe(d.Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
