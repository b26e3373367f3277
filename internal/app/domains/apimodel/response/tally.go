package response

import (
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpledger"
)

// TallyClosingBalanceResponse 单账本余额查询结果
type TallyClosingBalanceResponse struct {
	Ledger         string  `json:"ledger"`
	ClosingBalance float64 `json:"closing_balance"`
}

// TallySyncResponse 批量余额同步结果
type TallySyncResponse struct {
	Synced int `json:"synced"`
}

// TallyCacheResponse 余额缓存状态
type TallyCacheResponse struct {
	Total           int              `json:"total"`
	CacheTTLMinutes int              `json:"cache_ttl_minutes"`
	Entries         []TallyCacheItem `json:"entries"`
}

// TallyCacheItem 一条余额缓存
type TallyCacheItem struct {
	RetailerID     int64     `json:"retailer_id"`
	LedgerName     string    `json:"ledger_name"`
	ClosingBalance float64   `json:"closing_balance"`
	CachedAt       time.Time `json:"cached_at"`
	AgeMinutes     int       `json:"age_minutes"`
	Expired        bool      `json:"expired"`
}

// FromCacheEntries 转换余额缓存列表
func FromCacheEntries(entries []rpledger.CacheEntry, ttlMinutes int) *TallyCacheResponse {
	now := time.Now()
	items := make([]TallyCacheItem, 0, len(entries))
	for _, entry := range entries {
		ageMinutes := int(now.Sub(entry.AsOf).Minutes())
		items = append(items, TallyCacheItem{
			RetailerID:     entry.RetailerID,
			LedgerName:     entry.LedgerName,
			ClosingBalance: entry.ClosingBalance,
			CachedAt:       entry.AsOf,
			AgeMinutes:     ageMinutes,
			Expired:        ageMinutes > ttlMinutes,
		})
	}
	return &TallyCacheResponse{
		Total:           len(items),
		CacheTTLMinutes: ttlMinutes,
		Entries:         items,
	}
}
