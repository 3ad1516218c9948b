package xerr

import "fmt"

// CodeError 对外暴露的 HTTP 错误，Code 即响应状态码
type CodeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// New 创建新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Message: msg}
}

// 常用通用错误码
const (
	NotFound            = 404
	InternalServerError = 500
)

// 常用预定义错误
var (
	ErrNotFound    = New(NotFound, "Not found")
	ErrServerError = New(InternalServerError, "Internal server error")
)
