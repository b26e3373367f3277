package rpinventory

import "context"

// StockRow 某零售商的一行在库数据
type StockRow struct {
	GoodsID  string
	Quantity int
}

// SnapshotRow PRM 全量快照中的一行
type SnapshotRow struct {
	RetailerID int64
	GoodsID    string
	Quantity   int
}

// InventoryRepository 在库快照仓储接口
// PRM 导入为全量覆盖，读取方只关心最新一轮快照
type InventoryRepository interface {
	// ListByRetailer 查询某零售商的在库明细
	ListByRetailer(ctx context.Context, retailerID int64) ([]StockRow, error)

	// ReplaceAll 整表替换快照（导入事务内调用）
	ReplaceAll(ctx context.Context, rows []SnapshotRow) error
}
