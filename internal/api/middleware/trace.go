package middleware

import (
	"Bastion/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const TraceHeader = "X-Trace-ID"

func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithTraceID(c.Request.Context(), c.GetHeader(TraceHeader))
		traceID := logger.TraceID(ctx)

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
