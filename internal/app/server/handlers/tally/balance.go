package tally

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/response"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/ginx"
)

// ClosingBalance 查询单账本期末余额接口
// GET /api/v1/tally/closing-balance?ledger=RET-001
func (h *TallyHandler) ClosingBalance(c *gin.Context) {
	ledger := c.Query("ledger")
	if ledger == "" {
		ginx.BadRequest(c, "ledger query parameter required")
		return
	}

	balance, err := h.ledgerService.ClosingBalance(c.Request.Context(), ledger)
	if err != nil {
		ginx.InternalError(c, fmt.Sprintf("Failed to get closing balance for '%s': %v", ledger, err))
		return
	}

	ginx.Success(c, response.TallyClosingBalanceResponse{
		Ledger:         ledger,
		ClosingBalance: balance,
	})
}

// Cache 余额缓存状态接口
// GET /api/v1/tally/cache
func (h *TallyHandler) Cache(c *gin.Context) {
	entries, err := h.ledgerService.CacheEntries(c.Request.Context())
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromCacheEntries(entries, h.cacheTTLMinutes))
}
