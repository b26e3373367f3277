package rpsynclog

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/entity"
)

// SyncLogRepositoryImpl PRM 导入运行日志仓储实现（MySQL）
type SyncLogRepositoryImpl struct {
	db *gorm.DB
}

// NewSyncLogRepository 创建导入日志仓储实例
func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &SyncLogRepositoryImpl{db: db}
}

// Start 记录一次导入开始
func (r *SyncLogRepositoryImpl) Start(ctx context.Context) (int64, error) {
	po := entity.PrmSyncRunLog{
		StartedAt: time.Now(),
		Status:    entity.SyncRunStatusRunning,
	}
	if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
		return 0, err
	}
	return po.ID, nil
}

// FinishSuccess 标记导入成功
func (r *SyncLogRepositoryImpl) FinishSuccess(ctx context.Context, id int64, rowsImported int, stats ImportStats) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entity.PrmSyncRunLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"finished_at":   &now,
			"status":        entity.SyncRunStatusSuccess,
			"rows_imported": rowsImported,
			"stats":         datatypes.JSON(statsJSON),
		}).Error
}

// FinishError 标记导入失败
func (r *SyncLogRepositoryImpl) FinishError(ctx context.Context, id int64, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entity.PrmSyncRunLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"finished_at":   &now,
			"status":        entity.SyncRunStatusError,
			"error_message": errMsg,
		}).Error
}

// ListRecent 查询最近的导入记录
func (r *SyncLogRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]RunLog, error) {
	var pos []entity.PrmSyncRunLog
	err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&pos).Error
	if err != nil {
		return nil, err
	}

	logs := make([]RunLog, 0, len(pos))
	for i := range pos {
		log := RunLog{
			ID:           pos[i].ID,
			StartedAt:    pos[i].StartedAt,
			FinishedAt:   pos[i].FinishedAt,
			Status:       pos[i].Status,
			RowsImported: pos[i].RowsImported,
			ErrorMessage: pos[i].ErrorMessage,
		}
		if len(pos[i].Stats) > 0 {
			var stats ImportStats
			if err := json.Unmarshal(pos[i].Stats, &stats); err == nil {
				log.Stats = &stats
			}
		}
		logs = append(logs, log)
	}
	return logs, nil
}
