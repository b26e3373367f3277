package rpproduct

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/entity"
)

// ProductRepositoryImpl 商品仓储实现（MySQL）
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// GetByGoodsID 根据 goods_id 查询商品
func (r *ProductRepositoryImpl) GetByGoodsID(ctx context.Context, goodsID string) (*etproduct.Product, error) {
	var po entity.Product
	err := r.db.WithContext(ctx).Where("goods_id = ?", goodsID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(&po), nil
}

// PriceMap 查询全量价格表
func (r *ProductRepositoryImpl) PriceMap(ctx context.Context) (map[string]float64, error) {
	var pos []entity.Product
	err := r.db.WithContext(ctx).
		Select("goods_id", "current_price").
		Where("current_price IS NOT NULL").
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(pos))
	for i := range pos {
		if pos[i].CurrentPrice != nil {
			prices[pos[i].GoodsID] = *pos[i].CurrentPrice
		}
	}
	return prices, nil
}

// Upsert 按 goods_id 插入或更新商品名称/品类
func (r *ProductRepositoryImpl) Upsert(ctx context.Context, goodsID, name, category string) (bool, error) {
	var po entity.Product
	err := r.db.WithContext(ctx).Where("goods_id = ?", goodsID).First(&po).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}

		po = entity.Product{GoodsID: goodsID, Name: name, Category: category}
		if err := r.db.WithContext(ctx).Create(&po).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	updates := map[string]interface{}{}
	if name != "" && po.Name != name {
		updates["name"] = name
	}
	if po.Category != category {
		updates["category"] = category
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&po).Updates(updates).Error; err != nil {
			return false, err
		}
	}
	return false, nil
}

// ApplyPriceUpdate 应用一条价格更新（事务内落 price_history）
func (r *ProductRepositoryImpl) ApplyPriceUpdate(ctx context.Context, update PriceUpdate) (bool, error) {
	priceChanged := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po entity.Product
		err := tx.Where("goods_id = ?", update.GoodsID).First(&po).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		source := update.Source
		if source == "" {
			source = "admin_api"
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 新商品
			po = entity.Product{GoodsID: update.GoodsID}
			if update.Name != nil {
				po.Name = *update.Name
			}
			if update.Category != nil {
				po.Category = *update.Category
			}
			po.CurrentPrice = update.Price
			po.LastPriceUpdate = time.Now()
			if err := tx.Create(&po).Error; err != nil {
				return err
			}

			if update.Price != nil {
				priceChanged = true
				return tx.Create(&entity.PriceHistory{
					ProductID: po.ID,
					OldPrice:  nil,
					NewPrice:  *update.Price,
					Source:    source,
				}).Error
			}
			return nil
		}

		// 已有商品
		updates := map[string]interface{}{}
		if update.Name != nil {
			updates["name"] = *update.Name
		}
		if update.Category != nil {
			updates["category"] = *update.Category
		}
		if update.Price != nil && (po.CurrentPrice == nil || *po.CurrentPrice != *update.Price) {
			if err := tx.Create(&entity.PriceHistory{
				ProductID: po.ID,
				OldPrice:  po.CurrentPrice,
				NewPrice:  *update.Price,
				Source:    source,
			}).Error; err != nil {
				return err
			}
			priceChanged = true
			updates["current_price"] = *update.Price
			updates["last_price_update"] = time.Now()
		}
		if len(updates) > 0 {
			return tx.Model(&po).Updates(updates).Error
		}
		return nil
	})

	return priceChanged, err
}

// ListPriceHistory 查询最近的价格变更记录
func (r *ProductRepositoryImpl) ListPriceHistory(ctx context.Context, limit int) ([]PriceChange, error) {
	var pos []entity.PriceHistory
	err := r.db.WithContext(ctx).Order("changed_at DESC").Limit(limit).Find(&pos).Error
	if err != nil {
		return nil, err
	}

	changes := make([]PriceChange, 0, len(pos))
	for i := range pos {
		change := PriceChange{
			ID:        pos[i].ID,
			ProductID: pos[i].ProductID,
			OldPrice:  pos[i].OldPrice,
			NewPrice:  pos[i].NewPrice,
			ChangedAt: pos[i].ChangedAt,
			Source:    pos[i].Source,
		}

		var product entity.Product
		if err := r.db.WithContext(ctx).Where("id = ?", pos[i].ProductID).First(&product).Error; err == nil {
			change.GoodsID = product.GoodsID
			change.ProductName = product.Name
		}

		changes = append(changes, change)
	}
	return changes, nil
}

// toDomain 转换为领域对象
func toDomain(po *entity.Product) *etproduct.Product {
	return &etproduct.Product{
		ID:              po.ID,
		GoodsID:         po.GoodsID,
		Name:            po.Name,
		Category:        po.Category,
		CurrentPrice:    po.CurrentPrice,
		LastPriceUpdate: po.LastPriceUpdate,
	}
}
