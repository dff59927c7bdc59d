package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/clients/auth"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
)

const (
	sessionCookie = "session"
	bearerPrefix  = "Bearer "
)

var histogramResponseTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "finances",
		Subsystem: "http",
		Name:      "histogram_response_time_seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	},
	[]string{"route", "status"},
)

func observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		histogramResponseTime.
			WithLabelValues(route, strconv.Itoa(status)).
			Observe(elapsed.Seconds())
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed))
	}
}

// authenticate puts the session's user into the request context.
// Anonymous requests pass through, handlers decide what they need.
func authenticate(a authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, ok, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Error("session lookup failed", zap.Error(err))
			abortWithError(c, err)
			return
		}
		if ok {
			c.Request = c.Request.WithContext(auth.WithCaller(c.Request.Context(), userID))
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

func abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	body := gin.H{"error": customerr.UserMessage(err)}
	if status == http.StatusUnauthorized {
		body["redirect"] = loginPath
	}
	c.AbortWithStatusJSON(status, body)
}
