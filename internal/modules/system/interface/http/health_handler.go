package handler

import (
	"ContentFront/pkg/back"
	"ContentFront/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// HealthRespond GET /health 响应
type HealthRespond struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Environment string `json:"environment"`
}

type SystemHandler struct {
	service     string
	environment string
}

func NewSystemHandler(service, environment string) *SystemHandler {
	return &SystemHandler{service: service, environment: environment}
}

// Health 只反映本进程状态，不访问上游
func (h *SystemHandler) Health(c *gin.Context) {
	back.Success(c, HealthRespond{
		Status:      "healthy",
		Service:     h.service,
		Environment: h.environment,
	})
}

// NotFound 未匹配路由
func (h *SystemHandler) NotFound(c *gin.Context) {
	back.Result(c, nil, xerr.ErrNotFound)
}
