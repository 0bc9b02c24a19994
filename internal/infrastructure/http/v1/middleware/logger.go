package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"stylos/internal/core/appctx"
	"stylos/pkg/logger"
)

// Logger logs completed HTTP requests with timing and status. Liveness
// probes are skipped to keep the log readable.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		if strings.HasPrefix(path, "/health") {
			return
		}

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if query != "" {
			fields = append(fields, "query", query)
		}
		if user := appctx.GetUser(c.Request.Context()); user != nil {
			fields = append(fields, "user_id", user.UserID)
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, "errors", errs)
		}

		log.WithContext(c.Request.Context()).Infow("http request", fields...)
	}
}
