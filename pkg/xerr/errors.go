package xerr

import (
	"errors"
	"fmt"
)

// ConfigurationError 缺失或非法的配置项，启动阶段致命，请求阶段按 500 处理
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}

// NewConfigurationError 创建 ConfigurationError
func NewConfigurationError(key, reason string) *ConfigurationError {
	return &ConfigurationError{Key: key, Reason: reason}
}

// TransportKind 区分上游调用失败的类别
type TransportKind int

const (
	TransportOther TransportKind = iota
	// TransportConnection 上游不可达：拒绝连接、DNS 解析失败等
	TransportConnection
	TransportTimeout
	// TransportStatus 上游返回非 2xx
	TransportStatus
)

func (k TransportKind) String() string {
	switch k {
	case TransportConnection:
		return "connection"
	case TransportTimeout:
		return "timeout"
	case TransportStatus:
		return "status"
	default:
		return "other"
	}
}

// TransportError 上游调用失败。Err 保留原始错误，可通过 errors.Is / errors.As 取回
type TransportError struct {
	Kind       TransportKind
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Kind == TransportStatus {
		return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s %s failure: %v", e.URL, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsConnectionFailure 判断 err 是否为上游不可达
func IsConnectionFailure(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == TransportConnection
}

// MalformedResponseError 上游可达但响应结构不符合约定
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed upstream response: " + e.Reason
}
