package response

import (
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svproduct"
)

// ProductPriceUpdateResponse 批量价格更新结果
type ProductPriceUpdateResponse struct {
	Updated      int `json:"updated"`
	PriceChanges int `json:"price_changes"`
}

// FromUpdateResult 转换价格更新结果
func FromUpdateResult(result *svproduct.UpdateResult) *ProductPriceUpdateResponse {
	return &ProductPriceUpdateResponse{
		Updated:      result.Updated,
		PriceChanges: result.PriceChanges,
	}
}

// PriceHistoryResponse 价格变更历史
type PriceHistoryResponse struct {
	Total   int                `json:"total"`
	Entries []PriceHistoryItem `json:"entries"`
}

// PriceHistoryItem 一条价格变更
type PriceHistoryItem struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	GoodsID     string    `json:"goods_id"`
	ProductName string    `json:"product_name"`
	OldPrice    *float64  `json:"old_price"`
	NewPrice    float64   `json:"new_price"`
	ChangedAt   time.Time `json:"changed_at"`
	Source      string    `json:"source"`
}

// FromPriceChanges 转换价格变更历史
func FromPriceChanges(changes []rpproduct.PriceChange) *PriceHistoryResponse {
	entries := make([]PriceHistoryItem, 0, len(changes))
	for _, change := range changes {
		entries = append(entries, PriceHistoryItem{
			ID:          change.ID,
			ProductID:   change.ProductID,
			GoodsID:     change.GoodsID,
			ProductName: change.ProductName,
			OldPrice:    change.OldPrice,
			NewPrice:    change.NewPrice,
			ChangedAt:   change.ChangedAt,
			Source:      change.Source,
		})
	}
	return &PriceHistoryResponse{
		Total:   len(entries),
		Entries: entries,
	}
}
