package rpretailer

import (
	"context"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
)

// RetailerRepository 零售商仓储接口
type RetailerRepository interface {
	// GetByCode 根据编码查询零售商，不存在时返回 (nil, nil)
	GetByCode(ctx context.Context, code string) (*etretailer.Retailer, error)

	// List 查询全部零售商（按编码排序）
	List(ctx context.Context) ([]*etretailer.Retailer, error)

	// ListCodes 查询全部零售商编码（Tally 同步 Agent 用）
	ListCodes(ctx context.Context) ([]string, error)

	// ListWithInventory 查询持有库存的零售商（OD 报表用）
	ListWithInventory(ctx context.Context) ([]*etretailer.Retailer, error)

	// Upsert 按编码插入或更新零售商名称，返回实体及是否新建
	Upsert(ctx context.Context, code, name string) (*etretailer.Retailer, bool, error)
}
