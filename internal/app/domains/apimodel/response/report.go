package response

import (
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/services/svreport"
)

// NegativeReportResponse OD 报表
type NegativeReportResponse struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Rows        []NegativeReportRow `json:"rows"`
}

// NegativeReportRow OD 报表行
type NegativeReportRow struct {
	RetailerCode   string  `json:"retailer_code"`
	RetailerName   string  `json:"retailer_name"`
	ClosingBalance float64 `json:"closing_balance"`
	StockValue     float64 `json:"stock_value"`
	ODAmount       float64 `json:"od_amount"`
}

// FromNegativeReport 转换 OD 报表
func FromNegativeReport(report *svreport.NegativeReport) *NegativeReportResponse {
	rows := make([]NegativeReportRow, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, NegativeReportRow{
			RetailerCode:   row.RetailerCode,
			RetailerName:   row.RetailerName,
			ClosingBalance: row.ClosingBalance,
			StockValue:     row.StockValue,
			ODAmount:       row.ODAmount,
		})
	}
	return &NegativeReportResponse{
		GeneratedAt: report.GeneratedAt,
		Rows:        rows,
	}
}
