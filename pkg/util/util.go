package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewRequestID 生成请求 ID (UUID v4)
func NewRequestID() string {
	return uuid.New().String()
}

// RandomKey 生成 64 位十六进制随机串，仅用于开发环境的临时会话密钥
func RandomKey() string {
	return strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}

// SplitAndTrim 按 sep 切分并去掉空白项
func SplitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
