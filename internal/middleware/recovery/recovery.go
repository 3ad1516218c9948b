package recovery

import (
	"io"

	"ContentFront/pkg/back"
	"ContentFront/pkg/xerr"
	"ContentFront/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 捕获 panic，记录堆栈并返回通用 500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		zlog.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		back.Error(c, xerr.ErrServerError.Code, xerr.ErrServerError.Message)
	})
}

// Errors 统一处理 handler 通过 c.Error 交出的错误。
// 细节只写日志，响应体由 back.Result 决定
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			zlog.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(e.Err),
			)
		}
		if c.Writer.Written() {
			return
		}
		back.Result(c, nil, c.Errors.Last().Err)
	}
}
