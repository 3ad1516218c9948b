package accesslog

import (
	"time"

	"ContentFront/pkg/util"
	"ContentFront/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderRequestID 请求 ID 头，上游网关传入时沿用
const HeaderRequestID = "X-Request-ID"

// Logger 为每个请求分配请求 ID，并在结束时记录一条访问日志
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = util.NewRequestID()
		}
		c.Set("requestID", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("requestID", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			zlog.Error("request", fields...)
		case status >= 400:
			zlog.Warn("request", fields...)
		default:
			zlog.Info("request", fields...)
		}
	}
}
