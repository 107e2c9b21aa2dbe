package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cemse-backend/internal/platform/ctxutil"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

// RequestLogger writes one access line per request. Routes listed in quiet
// (health probes) are logged at debug unless they fail.
func RequestLogger(log *logger.Logger, quiet ...string) gin.HandlerFunc {
	quietRoutes := make(map[string]bool, len(quiet))
	for _, q := range quiet {
		quietRoutes[q] = true
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log == nil {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		fields := append([]interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
		}, ctxutil.LogFields(c.Request.Context())...)
		if id := c.Param("id"); id != "" {
			fields = append(fields, "plan_id", id)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		emit := log.Info
		switch {
		case status >= 500:
			emit = log.Error
		case status >= 400:
			emit = log.Warn
		case quietRoutes[route]:
			emit = log.Debug
		}
		emit("HTTP request", fields...)
	}
}
