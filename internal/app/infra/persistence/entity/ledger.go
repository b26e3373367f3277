package entity

import "time"

// TallyLedgerCache Tally 账本余额缓存表（Redis 之下的持久层，供陈旧回退）
type TallyLedgerCache struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RetailerID     int64     `gorm:"column:retailer_id;not null;index:idx_retailer_asof"`
	LedgerName     string    `gorm:"column:ledger_name;type:text;not null"`
	ClosingBalance *float64  `gorm:"column:closing_balance"`
	AsOf           time.Time `gorm:"column:as_of;not null;index:idx_retailer_asof"`
}

// TableName 指定表名
func (TallyLedgerCache) TableName() string {
	return "tally_ledger_cache"
}
