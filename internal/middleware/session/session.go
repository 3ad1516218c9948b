package session

import (
	"ContentFront/internal/modules/content/domain/entity"
	"ContentFront/pkg/util/myjwt"
	"ContentFront/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextKey = "session"

// Load 解析会话 cookie 并放入 gin 上下文。没有 cookie 或 cookie 无效时使用空会话
func Load(key, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		info := entity.SessionInfo{}

		raw, err := c.Cookie(cookieName)
		if err == nil && raw != "" {
			data, err := myjwt.ParseSession(raw, key)
			if err != nil {
				zlog.Warn("invalid session cookie, using empty session",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			} else {
				info = data
			}
		}

		c.Set(contextKey, info)
		c.Next()
	}
}

// From 取出当前请求的会话，未经过 Load 时返回空会话
func From(c *gin.Context) entity.SessionInfo {
	if v, ok := c.Get(contextKey); ok {
		if info, ok := v.(entity.SessionInfo); ok {
			return info
		}
	}
	return entity.SessionInfo{}
}
