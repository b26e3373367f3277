package rpproduct

import (
	"context"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etproduct"
)

// PriceUpdate 价格/元数据更新请求（nil 字段表示不变更）
type PriceUpdate struct {
	GoodsID  string
	Name     *string
	Category *string
	Price    *float64
	Source   string
}

// PriceChange 价格变更记录（含商品信息，调试接口用）
type PriceChange struct {
	ID          int64
	ProductID   int64
	GoodsID     string
	ProductName string
	OldPrice    *float64
	NewPrice    float64
	ChangedAt   time.Time
	Source      string
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// GetByGoodsID 根据 goods_id 查询商品，不存在时返回 (nil, nil)
	GetByGoodsID(ctx context.Context, goodsID string) (*etproduct.Product, error)

	// PriceMap 查询全量价格表（仅含已录入价格的商品），供审批流程做一次性快照
	PriceMap(ctx context.Context) (map[string]float64, error)

	// Upsert 按 goods_id 插入或更新商品名称/品类（不触碰价格），返回是否新建
	Upsert(ctx context.Context, goodsID, name, category string) (bool, error)

	// ApplyPriceUpdate 应用一条价格更新，价格变化时落 price_history
	// 返回是否产生了价格变更记录
	ApplyPriceUpdate(ctx context.Context, update PriceUpdate) (bool, error)

	// ListPriceHistory 查询最近的价格变更记录
	ListPriceHistory(ctx context.Context, limit int) ([]PriceChange, error)
}
