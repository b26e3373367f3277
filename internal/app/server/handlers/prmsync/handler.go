package prmsync

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/response"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/ginx"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svsync"
)

// PrmSyncHandler PRM 导入 HTTP 处理器
type PrmSyncHandler struct {
	syncService *svsync.SyncService
}

// NewPrmSyncHandler 创建 PRM 导入处理器实例
func NewPrmSyncHandler(syncService *svsync.SyncService) *PrmSyncHandler {
	return &PrmSyncHandler{
		syncService: syncService,
	}
}

// Run 触发一次 PRM 文件导入
// POST /api/v1/prm-sync/run
func (h *PrmSyncHandler) Run(c *gin.Context) {
	result, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		ginx.InternalError(c, fmt.Sprintf("PRM sync failed: %v", err))
		return
	}

	ginx.Success(c, response.FromRunResult(result))
}

// Logs 查询最近导入记录
// GET /api/v1/prm-sync/logs?limit=20
func (h *PrmSyncHandler) Logs(c *gin.Context) {
	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := h.syncService.RecentLogs(c.Request.Context(), limit)
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromRunLogs(logs))
}
