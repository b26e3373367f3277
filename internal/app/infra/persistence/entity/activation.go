package entity

import "time"

// Activation 激活事件表
type Activation struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement"`
	GoodsID          string     `gorm:"column:goods_id;type:varchar(64);not null"`
	ImeiSN           string     `gorm:"column:imei_sn;type:varchar(64);index:idx_imei_sn"`
	RetailerID       *int64     `gorm:"column:retailer_id;index:idx_retailer_time"`
	ActivationStatus string     `gorm:"column:activation_status;type:varchar(32)"`
	ActivationTime   *time.Time `gorm:"column:activation_time;index:idx_retailer_time"`
}

// TableName 指定表名
func (Activation) TableName() string {
	return "activations"
}
