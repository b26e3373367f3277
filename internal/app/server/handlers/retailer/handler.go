package retailer

import (
	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/response"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/ginx"
)

// RetailerHandler 零售商 HTTP 处理器
type RetailerHandler struct {
	retailerRepo rpretailer.RetailerRepository
}

// NewRetailerHandler 创建零售商处理器实例
func NewRetailerHandler(retailerRepo rpretailer.RetailerRepository) *RetailerHandler {
	return &RetailerHandler{
		retailerRepo: retailerRepo,
	}
}

// List 零售商列表接口（按编码排序）
// GET /api/v1/retailers
func (h *RetailerHandler) List(c *gin.Context) {
	retailers, err := h.retailerRepo.List(c.Request.Context())
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromRetailerEntities(retailers))
}
