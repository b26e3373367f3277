package mdledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpledger"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/errorx"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// TallyFetcher Tally 余额拉取接口
type TallyFetcher interface {
	GetClosingBalance(ctx context.Context, ledgerName string) (float64, error)
}

// BalanceCache 余额快取接口（Redis 实现）
// Get 未命中时返回 errorx.ErrCacheMiss
type BalanceCache interface {
	Get(ctx context.Context, retailerCode string) (float64, error)
	Set(ctx context.Context, retailerCode string, balance float64) error
}

// LedgerModule 账本余额模块
// 读取链路：Redis 快取 -> 持久缓存（未过期）-> Tally 拉取 -> 陈旧缓存兜底
type LedgerModule struct {
	retailerRepo rpretailer.RetailerRepository
	ledgerRepo   rpledger.LedgerRepository
	cache        BalanceCache
	fetcher      TallyFetcher
	cacheTTL     time.Duration
	log          logger.Logger

	now func() time.Time
}

// NewLedgerModule 创建账本余额模块
func NewLedgerModule(
	retailerRepo rpretailer.RetailerRepository,
	ledgerRepo rpledger.LedgerRepository,
	cache BalanceCache,
	fetcher TallyFetcher,
	cacheTTL time.Duration,
	log logger.Logger,
) *LedgerModule {
	return &LedgerModule{
		retailerRepo: retailerRepo,
		ledgerRepo:   ledgerRepo,
		cache:        cache,
		fetcher:      fetcher,
		cacheTTL:     cacheTTL,
		log:          log,
		now:          time.Now,
	}
}

// ClosingBalance 查询某零售商的期末余额
func (m *LedgerModule) ClosingBalance(ctx context.Context, retailer *etretailer.Retailer) (float64, error) {
	// 1. Redis 快取
	if m.cache != nil {
		balance, err := m.cache.Get(ctx, retailer.Code)
		if err == nil {
			return balance, nil
		}
		if !errors.Is(err, errorx.ErrCacheMiss) {
			m.log.Warnf(ctx, "balance cache get failed for %s: %v", retailer.Code, err)
		}
	}

	// 2. 持久缓存
	entry, err := m.ledgerRepo.Latest(ctx, retailer.ID)
	if err != nil {
		m.log.Warnf(ctx, "ledger cache lookup failed for %s: %v", retailer.Code, err)
		entry = nil
	}

	now := m.now()
	if entry != nil && now.Sub(entry.AsOf) <= m.cacheTTL {
		m.fillCache(ctx, retailer.Code, entry.ClosingBalance)
		return entry.ClosingBalance, nil
	}

	// 3. Tally 实时拉取
	ledgerName := retailer.LedgerName()
	balance, fetchErr := m.fetcher.GetClosingBalance(ctx, ledgerName)
	if fetchErr == nil {
		if err := m.ledgerRepo.Upsert(ctx, rpledger.CacheEntry{
			RetailerID:     retailer.ID,
			LedgerName:     ledgerName,
			ClosingBalance: balance,
			AsOf:           now,
		}); err != nil {
			m.log.Warnf(ctx, "ledger cache write failed for %s: %v", retailer.Code, err)
		}
		m.fillCache(ctx, retailer.Code, balance)
		return balance, nil
	}

	// 4. 拉取失败时用陈旧缓存兜底
	if entry != nil {
		m.log.Warnf(ctx, "tally fetch failed, using stale cache for %s: %v", retailer.Code, fetchErr)
		return entry.ClosingBalance, nil
	}

	return 0, fmt.Errorf("fetch tally balance for %s: %w", ledgerName, fetchErr)
}

// ClosingBalanceByLedger 按账本名直查余额
// 账本名对应已知零售商时走缓存链路，否则直连 Tally 不落缓存
func (m *LedgerModule) ClosingBalanceByLedger(ctx context.Context, ledgerName string) (float64, error) {
	retailer, err := m.retailerRepo.GetByCode(ctx, ledgerName)
	if err != nil {
		return 0, err
	}
	if retailer == nil {
		return m.fetcher.GetClosingBalance(ctx, ledgerName)
	}
	return m.ClosingBalance(ctx, retailer)
}

// ApplyBalance 写入一条外部推送的余额（同步接口与消费者共用）
func (m *LedgerModule) ApplyBalance(ctx context.Context, retailer *etretailer.Retailer, ledgerName string, balance float64, asOf time.Time) error {
	if ledgerName == "" {
		ledgerName = retailer.LedgerName()
	}
	if err := m.ledgerRepo.Upsert(ctx, rpledger.CacheEntry{
		RetailerID:     retailer.ID,
		LedgerName:     ledgerName,
		ClosingBalance: balance,
		AsOf:           asOf,
	}); err != nil {
		return err
	}
	m.fillCache(ctx, retailer.Code, balance)
	return nil
}

// ListCached 查询各零售商的最新缓存余额（调试接口用）
func (m *LedgerModule) ListCached(ctx context.Context) ([]rpledger.CacheEntry, error) {
	return m.ledgerRepo.ListAll(ctx)
}

func (m *LedgerModule) fillCache(ctx context.Context, retailerCode string, balance float64) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Set(ctx, retailerCode, balance); err != nil {
		m.log.Warnf(ctx, "balance cache set failed for %s: %v", retailerCode, err)
	}
}
