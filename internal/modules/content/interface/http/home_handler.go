package handler

import (
	"net/http"

	"ContentFront/internal/middleware/session"
	"ContentFront/internal/modules/content/domain/entity"
	"ContentFront/internal/modules/content/domain/repository"
	"ContentFront/pkg/xerr"
	"ContentFront/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotConnectedRecord 上游不可达时首页展示的内容
var NotConnectedRecord = entity.ContentRecord{Title: "No title", Text: "No text"}

type HomeHandler struct {
	fetcher repository.ContentFetcher
}

func NewHomeHandler(fetcher repository.ContentFetcher) *HomeHandler {
	return &HomeHandler{fetcher: fetcher}
}

// Home GET /
func (h *HomeHandler) Home(c *gin.Context) {
	record, err := h.fetcher.GetContent(c.Request.Context(), session.From(c))
	if err != nil {
		if !xerr.IsConnectionFailure(err) {
			// 超时、非 2xx、配置错误等交给 recovery.Errors 统一返回 500
			_ = c.Error(err)
			return
		}
		zlog.Warn("upstream not connected, rendering fallback content", zap.Error(err))
		record = NotConnectedRecord
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"content": record,
	})
}
