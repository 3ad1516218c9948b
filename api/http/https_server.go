package http

import (
	"time"

	"ContentFront/internal/config"
	"ContentFront/internal/middleware/accesslog"
	"ContentFront/internal/middleware/recovery"
	"ContentFront/internal/middleware/session"
	"ContentFront/internal/modules/content/domain/repository"
	contentHandler "ContentFront/internal/modules/content/interface/http"
	systemHandler "ContentFront/internal/modules/system/interface/http"
	"ContentFront/pkg/ssl"
	"ContentFront/web"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewEngine 组装中间件与路由
func NewEngine(conf *config.Config, fetcher repository.ContentFetcher) (*gin.Engine, error) {
	if conf.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := web.ParseTemplates()
	if err != nil {
		return nil, err
	}

	GE := gin.New()
	GE.SetHTMLTemplate(tmpl)
	// 不信任任何代理头推导客户端 IP，部署在代理后时再按需配置
	if err := GE.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	GE.Use(accesslog.Logger(), recovery.Recovery(), recovery.Errors())
	if h := corsHandler(conf.CorsConfig.AllowedOrigins); h != nil {
		GE.Use(h)
	}
	GE.Use(ssl.SecureHandler(conf.SecurityConfig, conf.IsDevelopment()))

	systemH := systemHandler.NewSystemHandler(conf.MainConfig.AppName, conf.MainConfig.Environment)
	homeH := contentHandler.NewHomeHandler(fetcher)

	GE.GET("/health", systemH.Health)
	GE.NoRoute(systemH.NotFound)

	pages := GE.Group("/")
	pages.Use(session.Load(conf.SessionConfig.SecretKey, conf.SessionConfig.CookieName))
	pages.GET("/", homeH.Home)

	return GE, nil
}

// corsHandler 未配置来源时不启用 CORS，仅允许同源访问
func corsHandler(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	for _, origin := range origins {
		if origin == "*" {
			// 通配与携带凭证不能同时开启
			corsConfig.AllowAllOrigins = true
			corsConfig.AllowCredentials = false
			return cors.New(corsConfig)
		}
	}
	corsConfig.AllowOrigins = origins
	return cors.New(corsConfig)
}
