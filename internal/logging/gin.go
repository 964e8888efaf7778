package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const headerRequestID = "X-Request-ID"

// GinMiddleware tags each request with an X-Request-ID and logs it once it completes.
func GinMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(headerRequestID, reqID)

		child := logger.With().
			Str(FieldRequestID, reqID).
			Str(FieldMethod, c.Request.Method).
			Str(FieldPath, c.Request.URL.Path).
			Str(FieldClientIP, c.ClientIP()).
			Logger()
		c.Request = c.Request.WithContext(child.WithContext(c.Request.Context()))

		c.Next()

		evt := child.Info().
			Int(FieldStatus, c.Writer.Status()).
			Float64(FieldLatency, latencyMS(time.Since(start)))
		if token := c.GetString(FieldClient); token != "" {
			evt = evt.Str(FieldClient, token)
		}
		evt.Msg("request completed")
	}
}

// latencyMS keeps sub-millisecond precision.
func latencyMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
