package rpledger

import (
	"context"
	"time"
)

// CacheEntry 一条账本余额持久缓存记录
type CacheEntry struct {
	RetailerID     int64
	LedgerName     string
	ClosingBalance float64
	AsOf           time.Time
}

// LedgerRepository 账本余额持久缓存仓储接口
// Redis 失效或 Tally 不可用时由该表兜底
type LedgerRepository interface {
	// Latest 查询某零售商最新一条有效余额，不存在时返回 (nil, nil)
	Latest(ctx context.Context, retailerID int64) (*CacheEntry, error)

	// Upsert 写入一条新的余额记录
	Upsert(ctx context.Context, entry CacheEntry) error

	// ListAll 查询各零售商最新余额（调试接口用）
	ListAll(ctx context.Context) ([]CacheEntry, error)
}
