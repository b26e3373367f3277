package rpactivation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/entity"
)

// ActivationRepositoryImpl 激活事件仓储实现（MySQL）
type ActivationRepositoryImpl struct {
	db *gorm.DB
}

// NewActivationRepository 创建激活事件仓储实例
func NewActivationRepository(db *gorm.DB) ActivationRepository {
	return &ActivationRepositoryImpl{db: db}
}

// ListActivatedSince 查询某零售商在 since 之后的激活事件
func (r *ActivationRepositoryImpl) ListActivatedSince(ctx context.Context, retailerID int64, since time.Time) ([]Event, error) {
	var pos []entity.Activation
	err := r.db.WithContext(ctx).
		Where("retailer_id = ?", retailerID).
		Where("activation_time IS NOT NULL").
		Where("activation_time >= ?", since).
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(pos))
	for i := range pos {
		events = append(events, Event{
			GoodsID:     pos[i].GoodsID,
			ActivatedAt: pos[i].ActivationTime,
		})
	}
	return events, nil
}

// ReplaceAll 整表替换激活数据
func (r *ActivationRepositoryImpl) ReplaceAll(ctx context.Context, rows []ImportRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&entity.Activation{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		pos := make([]entity.Activation, 0, len(rows))
		for _, row := range rows {
			pos = append(pos, entity.Activation{
				GoodsID:          row.GoodsID,
				ImeiSN:           row.ImeiSN,
				RetailerID:       row.RetailerID,
				ActivationStatus: row.ActivationStatus,
				ActivationTime:   row.ActivationTime,
			})
		}
		return tx.CreateInBatches(pos, 500).Error
	})
}
