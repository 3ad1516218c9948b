package ssl

import (
	"ContentFront/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SecureHandler 设置安全响应头；开启 ForceHTTPS 时把 http 请求重定向到 https
func SecureHandler(conf config.SecurityConfig, isDevelopment bool) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:           conf.ForceHTTPS,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            conf.STSSeconds,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: conf.ContentSecurityPolicy,
		IsDevelopment:         isDevelopment,
	})

	return func(c *gin.Context) {
		// Process 出错或已写出重定向时，secure 已处理响应，这里只需终止链路
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
			return
		}
		c.Next()
	}
}
