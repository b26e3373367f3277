package svledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpledger"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// BalanceApplier 余额写入接口（mdledger 实现）
type BalanceApplier interface {
	ApplyBalance(ctx context.Context, retailer *etretailer.Retailer, ledgerName string, balance float64, asOf time.Time) error
	ClosingBalanceByLedger(ctx context.Context, ledgerName string) (float64, error)
	ListCached(ctx context.Context) ([]rpledger.CacheEntry, error)
}

// BalanceEntry 一条推送来的余额
type BalanceEntry struct {
	RetailerCode   string
	ClosingBalance float64
	AsOf           time.Time
}

// LedgerService 账本余额同步服务
// 同步 Agent 的 HTTP 推送与队列消费共用这条写入链路
type LedgerService struct {
	retailerRepo rpretailer.RetailerRepository
	ledger       BalanceApplier
	log          logger.Logger
}

// NewLedgerService 创建账本同步服务
func NewLedgerService(retailerRepo rpretailer.RetailerRepository, ledger BalanceApplier, log logger.Logger) *LedgerService {
	return &LedgerService{
		retailerRepo: retailerRepo,
		ledger:       ledger,
		log:          log,
	}
}

// ApplyBalances 批量写入余额，返回实际写入条数
// 未知零售商编码跳过不报错
func (s *LedgerService) ApplyBalances(ctx context.Context, entries []BalanceEntry) (int, error) {
	synced := 0

	for _, entry := range entries {
		retailer, err := s.retailerRepo.GetByCode(ctx, entry.RetailerCode)
		if err != nil {
			return synced, fmt.Errorf("query retailer %s: %w", entry.RetailerCode, err)
		}
		if retailer == nil {
			s.log.Warnf(ctx, "balance sync: unknown retailer code %s, skipped", entry.RetailerCode)
			continue
		}

		asOf := entry.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}
		if err := s.ledger.ApplyBalance(ctx, retailer, entry.RetailerCode, entry.ClosingBalance, asOf); err != nil {
			return synced, fmt.Errorf("apply balance for %s: %w", entry.RetailerCode, err)
		}
		synced++
	}

	s.log.Infof(ctx, "balance sync applied %d of %d entries", synced, len(entries))
	return synced, nil
}

// ClosingBalance 按账本名查询余额（调试与人工核对用）
func (s *LedgerService) ClosingBalance(ctx context.Context, ledgerName string) (float64, error) {
	return s.ledger.ClosingBalanceByLedger(ctx, ledgerName)
}

// CacheEntries 查询各零售商的最新缓存余额
func (s *LedgerService) CacheEntries(ctx context.Context) ([]rpledger.CacheEntry, error) {
	return s.ledger.ListCached(ctx)
}
