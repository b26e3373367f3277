package report

import (
	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/apimodel/response"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/ginx"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svreport"
)

// ReportHandler 报表 HTTP 处理器
type ReportHandler struct {
	reportService *svreport.ReportService
}

// NewReportHandler 创建报表处理器实例
func NewReportHandler(reportService *svreport.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Negative OD 报表接口
// GET /api/v1/reports/negative
func (h *ReportHandler) Negative(c *gin.Context) {
	report, err := h.reportService.Negative(c.Request.Context())
	if err != nil {
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromNegativeReport(report))
}
