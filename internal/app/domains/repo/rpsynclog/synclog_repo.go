package rpsynclog

import (
	"context"
	"time"
)

// ImportStats 一次 PRM 导入的统计信息
type ImportStats struct {
	RetailersUpserted int `json:"retailers_upserted"`
	ProductsUpserted  int `json:"products_upserted"`
	InventoryRows     int `json:"inventory_rows"`
	ActivationRows    int `json:"activation_rows"`
}

// RunLog 一条导入运行记录
type RunLog struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   *time.Time
	Status       string
	RowsImported *int
	ErrorMessage string
	Stats        *ImportStats
}

// SyncLogRepository PRM 导入运行日志仓储接口
type SyncLogRepository interface {
	// Start 记录一次导入开始，返回日志 ID
	Start(ctx context.Context) (int64, error)

	// FinishSuccess 标记导入成功
	FinishSuccess(ctx context.Context, id int64, rowsImported int, stats ImportStats) error

	// FinishError 标记导入失败
	FinishError(ctx context.Context, id int64, errMsg string) error

	// ListRecent 查询最近的导入记录
	ListRecent(ctx context.Context, limit int) ([]RunLog, error)
}
