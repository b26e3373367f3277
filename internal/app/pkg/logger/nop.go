package logger

import "go.uber.org/zap"

// NewNopLogger 创建空日志实例（测试用）
func NewNopLogger() Logger {
	return &ZapLogger{logger: zap.NewNop()}
}
