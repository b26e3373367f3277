package response

import "github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"

// RetailerResponse 零售商信息
type RetailerResponse struct {
	ID           int64  `json:"id"`
	RetailerCode string `json:"retailer_code"`
	Name         string `json:"name"`
}

// FromRetailerEntities 转换零售商列表
func FromRetailerEntities(retailers []*etretailer.Retailer) []RetailerResponse {
	result := make([]RetailerResponse, 0, len(retailers))
	for _, r := range retailers {
		result = append(result, RetailerResponse{
			ID:           r.ID,
			RetailerCode: r.Code,
			Name:         r.Name,
		})
	}
	return result
}
