package request

import "github.com/ArpitBagaria/dist-backend/internal/app/services/svapproval"

// EvaluateOrderRequest 订单审批请求
type EvaluateOrderRequest struct {
	RetailerCode string             `json:"retailer_code" binding:"required"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest 订单行
type OrderItemRequest struct {
	GoodsID  string `json:"goods_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// ToOrderItems 转换为服务层订单行
func (r *EvaluateOrderRequest) ToOrderItems() []svapproval.OrderItem {
	items := make([]svapproval.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, svapproval.OrderItem{
			GoodsID:  item.GoodsID,
			Quantity: item.Quantity,
		})
	}
	return items
}
