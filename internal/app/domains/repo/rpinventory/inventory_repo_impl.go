package rpinventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/entity"
)

// InventoryRepositoryImpl 在库快照仓储实现（MySQL）
type InventoryRepositoryImpl struct {
	db *gorm.DB
}

// NewInventoryRepository 创建在库快照仓储实例
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &InventoryRepositoryImpl{db: db}
}

// ListByRetailer 查询某零售商的在库明细
func (r *InventoryRepositoryImpl) ListByRetailer(ctx context.Context, retailerID int64) ([]StockRow, error) {
	var pos []entity.PrmInventorySnapshot
	err := r.db.WithContext(ctx).Where("retailer_id = ?", retailerID).Find(&pos).Error
	if err != nil {
		return nil, err
	}

	rows := make([]StockRow, 0, len(pos))
	for i := range pos {
		rows = append(rows, StockRow{
			GoodsID:  pos[i].GoodsID,
			Quantity: pos[i].Quantity,
		})
	}
	return rows, nil
}

// ReplaceAll 整表替换快照
func (r *InventoryRepositoryImpl) ReplaceAll(ctx context.Context, rows []SnapshotRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&entity.PrmInventorySnapshot{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		pos := make([]entity.PrmInventorySnapshot, 0, len(rows))
		for _, row := range rows {
			pos = append(pos, entity.PrmInventorySnapshot{
				RetailerID: row.RetailerID,
				GoodsID:    row.GoodsID,
				Quantity:   row.Quantity,
			})
		}
		return tx.CreateInBatches(pos, 500).Error
	})
}
