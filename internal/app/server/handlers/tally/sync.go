package tally

import (
	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/request"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/response"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/ginx"
)

// Sync 批量余额同步接口（同步 Agent 推送）
// POST /api/v1/tally/sync
func (h *TallyHandler) Sync(c *gin.Context) {
	var req request.TallySyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	// 配置了 API Key 时校验
	if h.syncAPIKey != "" && req.APIKey != h.syncAPIKey {
		ginx.Unauthorized(c, "Invalid API key")
		return
	}

	synced, err := h.ledgerService.ApplyBalances(c.Request.Context(), req.ToBalanceEntries())
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.TallySyncResponse{Synced: synced})
}
