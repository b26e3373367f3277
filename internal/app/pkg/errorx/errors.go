package errorx

import "errors"

// 定义业务错误
var (
	ErrRetailerNotFound  = errors.New("retailer not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrLedgerUnavailable = errors.New("ledger balance unavailable")
	ErrInvalidAPIKey     = errors.New("invalid api key")
	ErrCacheMiss         = errors.New("balance cache miss")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	return e.Message
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}
