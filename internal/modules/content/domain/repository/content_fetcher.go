package repository

import (
	"context"

	"ContentFront/internal/modules/content/domain/entity"
)

// ContentFetcher 从上游内容服务获取首页内容
type ContentFetcher interface {
	// GetContent 上游不可达、超时、非 2xx 时返回 *xerr.TransportError；
	// 响应结构不合法时返回默认内容且 error 为 nil
	GetContent(ctx context.Context, session entity.SessionInfo) (entity.ContentRecord, error)
}
