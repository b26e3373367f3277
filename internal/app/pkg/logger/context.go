package logger

import "context"

// WithTraceID 把 trace_id 写入 Context，供日志输出提取
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, "trace_id", traceID) //nolint:staticcheck
}

// WithRetailerCode 把零售商编码写入 Context，供日志输出提取
func WithRetailerCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, "retailer_code", code) //nolint:staticcheck
}
