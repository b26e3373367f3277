package approval

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/request"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/response"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/errorx"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/ginx"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// Evaluate 订单自动审批接口
// POST /api/v1/approvals/evaluate
func (h *ApprovalHandler) Evaluate(c *gin.Context) {
	var req request.EvaluateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ctx := logger.WithRetailerCode(c.Request.Context(), req.RetailerCode)
	payload, err := h.approvalService.EvaluateOrder(ctx, req.RetailerCode, req.ToOrderItems())
	if err != nil {
		if errors.Is(err, errorx.ErrRetailerNotFound) {
			ginx.NotFound(c, fmt.Sprintf("Retailer with code %s not found", req.RetailerCode))
			return
		}
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromDecisionPayload(payload))
}
