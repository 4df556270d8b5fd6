package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/launchblock/cerberus/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Auth Metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)

	SessionValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_session_validations_total",
			Help: "Total number of session validations by outcome",
		},
		[]string{"outcome"},
	)
)

// MetricsMiddleware records request counts and durations per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// recordLogin increments the login counter with an outcome label derived
// from the handshake error, if any.
func recordLogin(err error) {
	outcome := "success"
	switch err {
	case nil:
	case core.ErrNotAnAdmin:
		outcome = "not_admin"
	case core.ErrInvalidMessageFormat:
		outcome = "bad_message"
	case core.ErrExpiredChallenge:
		outcome = "expired_challenge"
	case core.ErrChallengeUsed:
		outcome = "challenge_used"
	case core.ErrInvalidSignature:
		outcome = "bad_signature"
	default:
		outcome = "error"
	}
	LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

func recordValidation(valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	SessionValidationsTotal.WithLabelValues(outcome).Inc()
}
