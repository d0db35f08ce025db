package middleware

import (
	"fmt"
	"time"

	"busdepot/internal/utils"

	"github.com/gin-gonic/gin"
)

// Logger writes one access line per request through the leveled logger.
// The action is the matched route pattern, or "unmatched" for 404s.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		msg := fmt.Sprintf("method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			c.Request.Method,
			c.Request.URL.Path,
			status,
			float64(time.Since(start).Microseconds())/1000.0,
			c.ClientIP(),
		)
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			msg += " errors=" + errs.Last().Error()
		}
		utils.LogStatus(GetRequestID(c), "http", route, status, msg)
	}
}
