package svproduct

import (
	"context"
	"fmt"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// UpdateResult 批量价格更新的统计结果
type UpdateResult struct {
	Updated      int
	PriceChanges int
}

// ProductService 商品管理服务
type ProductService struct {
	productRepo rpproduct.ProductRepository
	log         logger.Logger
}

// NewProductService 创建商品服务
func NewProductService(productRepo rpproduct.ProductRepository, log logger.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		log:         log,
	}
}

// UpdatePrices 批量更新商品价格与元数据
// 价格变化落 price_history，新品首价也记一条历史
func (s *ProductService) UpdatePrices(ctx context.Context, updates []rpproduct.PriceUpdate) (*UpdateResult, error) {
	result := &UpdateResult{}

	for _, update := range updates {
		changed, err := s.productRepo.ApplyPriceUpdate(ctx, update)
		if err != nil {
			return nil, fmt.Errorf("apply price update for %s: %w", update.GoodsID, err)
		}
		result.Updated++
		if changed {
			result.PriceChanges++
		}
	}

	s.log.Infof(ctx, "updated %d products, logged %d price changes", result.Updated, result.PriceChanges)
	return result, nil
}

// PriceHistory 查询最近的价格变更记录
func (s *ProductService) PriceHistory(ctx context.Context, limit int) ([]rpproduct.PriceChange, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	return s.productRepo.ListPriceHistory(ctx, limit)
}
