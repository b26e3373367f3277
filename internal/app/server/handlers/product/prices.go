package product

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/request"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/response"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/ginx"
)

// UpdatePrices 批量更新商品价格接口
// PUT /api/v1/products/prices
func (h *ProductHandler) UpdatePrices(c *gin.Context) {
	var req request.ProductPriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	result, err := h.productService.UpdatePrices(c.Request.Context(), req.ToPriceUpdates())
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromUpdateResult(result))
}

// PriceHistory 价格变更历史接口
// GET /api/v1/products/price-history?limit=50
func (h *ProductHandler) PriceHistory(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	changes, err := h.productService.PriceHistory(c.Request.Context(), limit)
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromPriceChanges(changes))
}
