package request

import (
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/services/svledger"
)

// TallySyncRequest 批量余额同步请求（同步 Agent 推送）
type TallySyncRequest struct {
	APIKey  string           `json:"api_key"`
	Entries []TallySyncEntry `json:"entries" binding:"required,min=1,dive"`
}

// TallySyncEntry 一条余额
type TallySyncEntry struct {
	RetailerCode   string    `json:"retailer_code" binding:"required"`
	ClosingBalance float64   `json:"closing_balance"`
	AsOf           time.Time `json:"as_of"`
}

// ToBalanceEntries 转换为服务层余额条目
func (r *TallySyncRequest) ToBalanceEntries() []svledger.BalanceEntry {
	entries := make([]svledger.BalanceEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, svledger.BalanceEntry{
			RetailerCode:   e.RetailerCode,
			ClosingBalance: e.ClosingBalance,
			AsOf:           e.AsOf,
		})
	}
	return entries
}
