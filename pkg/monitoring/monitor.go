package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	RulesEvaluated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_rules_evaluated_total",
			Help: "Total number of submission rules evaluated",
		},
		[]string{"assessment"},
	)

	FollowUpsAssigned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "follow_up_assessments_assigned_total",
			Help: "Total number of follow-up assessment instances created by rules",
		},
	)

	FollowUpsDeduplicated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "follow_up_assessments_deduplicated_total",
			Help: "Total number of rule actions suppressed by the once-per-day dedup guard",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RulesEvaluated)
	prometheus.MustRegister(FollowUpsAssigned)
	prometheus.MustRegister(FollowUpsDeduplicated)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
