package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "registrations_total",
		Help:      "Successful user registrations.",
	})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "applications_submitted_total",
		Help:      "Applications stored.",
	})

	CronRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "cron_runs_total",
		Help:      "Background job runs by job and status.",
	}, []string{"job", "status"})
)

// Login outcomes
const (
	LoginSuccess = "success"
	LoginAdmin   = "admin"
	LoginFailed  = "failed"
)

// Middleware records request count and latency per matched route
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		route := c.Route().Path
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus exposition format
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
