package entity

import (
	"time"

	"gorm.io/datatypes"
)

// 导入运行状态
const (
	SyncRunStatusRunning = "running"
	SyncRunStatusSuccess = "success"
	SyncRunStatusError   = "error"
)

// PrmSyncRunLog PRM 导入运行日志表
type PrmSyncRunLog struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement"`
	StartedAt    time.Time      `gorm:"column:started_at;not null;index:idx_started_at"`
	FinishedAt   *time.Time     `gorm:"column:finished_at"`
	Status       string         `gorm:"column:status;type:varchar(16)"`
	RowsImported *int           `gorm:"column:rows_imported"`
	ErrorMessage string         `gorm:"column:error_message;type:text"`
	Stats        datatypes.JSON `gorm:"column:stats;type:json"`
}

// TableName 指定表名
func (PrmSyncRunLog) TableName() string {
	return "prm_sync_run_log"
}
