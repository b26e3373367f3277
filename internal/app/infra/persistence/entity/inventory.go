package entity

import "time"

// PrmInventorySnapshot PRM 库存快照表（每次导入整表重建）
type PrmInventorySnapshot struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RetailerID int64     `gorm:"column:retailer_id;not null;index:idx_retailer_id"`
	GoodsID    string    `gorm:"column:goods_id;type:varchar(64);not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
	LastSeen   time.Time `gorm:"column:last_seen;autoCreateTime"`
}

// TableName 指定表名
func (PrmInventorySnapshot) TableName() string {
	return "prm_inventory_snapshot"
}
