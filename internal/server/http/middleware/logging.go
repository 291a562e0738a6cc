package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with its outcome. The basket session id is
// included when the Session middleware minted one, so storefront flows can be
// traced across catalog, basket and order calls.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			attrs = append(attrs, slog.String("query", query))
		}
		if sessionID := c.GetString(SessionIDContextKey); sessionID != "" {
			attrs = append(attrs, slog.String("session", sessionID))
		}
		logger.Info("http request", attrs...)
	}
}
