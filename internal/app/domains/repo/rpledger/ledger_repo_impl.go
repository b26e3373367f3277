package rpledger

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/entity"
)

// LedgerRepositoryImpl 账本余额持久缓存仓储实现（MySQL）
type LedgerRepositoryImpl struct {
	db *gorm.DB
}

// NewLedgerRepository 创建账本余额仓储实例
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &LedgerRepositoryImpl{db: db}
}

// Latest 查询某零售商最新一条有效余额
func (r *LedgerRepositoryImpl) Latest(ctx context.Context, retailerID int64) (*CacheEntry, error) {
	var po entity.TallyLedgerCache
	err := r.db.WithContext(ctx).
		Where("retailer_id = ?", retailerID).
		Where("closing_balance IS NOT NULL").
		Order("as_of DESC").
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &CacheEntry{
		RetailerID:     po.RetailerID,
		LedgerName:     po.LedgerName,
		ClosingBalance: *po.ClosingBalance,
		AsOf:           po.AsOf,
	}, nil
}

// Upsert 写入一条新的余额记录
func (r *LedgerRepositoryImpl) Upsert(ctx context.Context, entry CacheEntry) error {
	balance := entry.ClosingBalance
	po := entity.TallyLedgerCache{
		RetailerID:     entry.RetailerID,
		LedgerName:     entry.LedgerName,
		ClosingBalance: &balance,
		AsOf:           entry.AsOf,
	}
	return r.db.WithContext(ctx).Create(&po).Error
}

// ListAll 查询各零售商最新余额
func (r *LedgerRepositoryImpl) ListAll(ctx context.Context) ([]CacheEntry, error) {
	var pos []entity.TallyLedgerCache
	err := r.db.WithContext(ctx).
		Where("closing_balance IS NOT NULL").
		Order("retailer_id ASC, as_of DESC").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	// 每个零售商只保留最新一条
	entries := make([]CacheEntry, 0, len(pos))
	seen := make(map[int64]struct{}, len(pos))
	for i := range pos {
		if _, ok := seen[pos[i].RetailerID]; ok {
			continue
		}
		seen[pos[i].RetailerID] = struct{}{}
		entries = append(entries, CacheEntry{
			RetailerID:     pos[i].RetailerID,
			LedgerName:     pos[i].LedgerName,
			ClosingBalance: *pos[i].ClosingBalance,
			AsOf:           pos[i].AsOf,
		})
	}
	return entries, nil
}
