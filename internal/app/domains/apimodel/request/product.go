package request

import "github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"

// ProductPriceUpdateRequest 批量价格更新请求
type ProductPriceUpdateRequest struct {
	Updates []ProductPriceUpdate `json:"updates" binding:"required,min=1,dive"`
}

// ProductPriceUpdate 一条价格/元数据更新，nil 字段表示不变更
type ProductPriceUpdate struct {
	GoodsID  string   `json:"goods_id" binding:"required"`
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
}

// ToPriceUpdates 转换为仓储层更新
func (r *ProductPriceUpdateRequest) ToPriceUpdates() []rpproduct.PriceUpdate {
	updates := make([]rpproduct.PriceUpdate, 0, len(r.Updates))
	for _, u := range r.Updates {
		updates = append(updates, rpproduct.PriceUpdate{
			GoodsID:  u.GoodsID,
			Name:     u.Name,
			Category: u.Category,
			Price:    u.Price,
			Source:   "admin_api",
		})
	}
	return updates
}
