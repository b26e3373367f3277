package rpactivation

import (
	"context"
	"time"
)

// Event 激活事件（最近销量统计用）
type Event struct {
	GoodsID     string
	ActivatedAt *time.Time
}

// ImportRow PRM 导入的一行激活数据
type ImportRow struct {
	GoodsID          string
	ImeiSN           string
	RetailerID       *int64
	ActivationStatus string
	ActivationTime   *time.Time
}

// ActivationRepository 激活事件仓储接口
type ActivationRepository interface {
	// ListActivatedSince 查询某零售商在 since 之后的激活事件（仅含已激活且有时间的记录）
	ListActivatedSince(ctx context.Context, retailerID int64, since time.Time) ([]Event, error)

	// ReplaceAll 整表替换激活数据（导入事务内调用）
	ReplaceAll(ctx context.Context, rows []ImportRow) error
}
