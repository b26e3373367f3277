package entity

import "time"

// Product 商品表
type Product struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	GoodsID         string    `gorm:"column:goods_id;type:varchar(64);uniqueIndex:uk_goods_id;not null"`
	Name            string    `gorm:"column:name;type:text"`
	Category        string    `gorm:"column:category;type:varchar(16)"`
	CurrentPrice    *float64  `gorm:"column:current_price"`
	LastPriceUpdate time.Time `gorm:"column:last_price_update"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// PriceHistory 价格变更记录表
type PriceHistory struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;not null;index:idx_product_id"`
	OldPrice  *float64  `gorm:"column:old_price"`
	NewPrice  float64   `gorm:"column:new_price;not null"`
	ChangedAt time.Time `gorm:"column:changed_at;autoCreateTime"`
	Source    string    `gorm:"column:source;type:varchar(32);default:'admin_api'"`
}

// TableName 指定表名
func (PriceHistory) TableName() string {
	return "price_history"
}
