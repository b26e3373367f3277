package tally

import "github.com/ArpitBagaria/dist-backend/internal/app/services/svledger"

// TallyHandler Tally 余额 HTTP 处理器
type TallyHandler struct {
	ledgerService   *svledger.LedgerService
	syncAPIKey      string
	cacheTTLMinutes int
}

// NewTallyHandler 创建 Tally 处理器实例
func NewTallyHandler(ledgerService *svledger.LedgerService, syncAPIKey string, cacheTTLMinutes int) *TallyHandler {
	return &TallyHandler{
		ledgerService:   ledgerService,
		syncAPIKey:      syncAPIKey,
		cacheTTLMinutes: cacheTTLMinutes,
	}
}
