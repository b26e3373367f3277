package mysql

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/entity"
)

// Open 建立数据库连接
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate 建表（服务启动时调用）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Retailer{},
		&entity.Product{},
		&entity.PriceHistory{},
		&entity.PrmInventorySnapshot{},
		&entity.Activation{},
		&entity.TallyLedgerCache{},
		&entity.PrmSyncRunLog{},
	)
}

// Close 关闭底层连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
