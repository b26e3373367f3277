package entity

// Retailer 零售商表
type Retailer struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	RetailerCode    string `gorm:"column:retailer_code;type:varchar(64);uniqueIndex:uk_retailer_code;not null"`
	Name            string `gorm:"column:name;type:text;not null"`
	Address         string `gorm:"column:address;type:text"`
	ContactPhone    string `gorm:"column:contact_phone;type:varchar(32)"`
	TallyLedgerName string `gorm:"column:tally_ledger_name;type:varchar(255)"`
}

// TableName 指定表名
func (Retailer) TableName() string {
	return "retailers"
}
