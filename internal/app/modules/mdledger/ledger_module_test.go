package mdledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpledger"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/errorx"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// mockRetailerRepo 零售商仓储 mock
type mockRetailerRepo struct {
	byCode map[string]*etretailer.Retailer
}

func (m *mockRetailerRepo) GetByCode(_ context.Context, code string) (*etretailer.Retailer, error) {
	return m.byCode[code], nil
}

func (m *mockRetailerRepo) List(context.Context) ([]*etretailer.Retailer, error) {
	return nil, nil
}

func (m *mockRetailerRepo) ListCodes(context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockRetailerRepo) ListWithInventory(context.Context) ([]*etretailer.Retailer, error) {
	return nil, nil
}

func (m *mockRetailerRepo) Upsert(context.Context, string, string) (*etretailer.Retailer, bool, error) {
	return nil, false, nil
}

// mockLedgerRepo 账本缓存仓储 mock
type mockLedgerRepo struct {
	latest   *rpledger.CacheEntry
	upserted []rpledger.CacheEntry
}

func (m *mockLedgerRepo) Latest(context.Context, int64) (*rpledger.CacheEntry, error) {
	return m.latest, nil
}

func (m *mockLedgerRepo) Upsert(_ context.Context, entry rpledger.CacheEntry) error {
	m.upserted = append(m.upserted, entry)
	return nil
}

func (m *mockLedgerRepo) ListAll(context.Context) ([]rpledger.CacheEntry, error) {
	return nil, nil
}

// mockCache Redis 快取 mock
type mockCache struct {
	values map[string]float64
	sets   map[string]float64
}

func newMockCache() *mockCache {
	return &mockCache{values: map[string]float64{}, sets: map[string]float64{}}
}

func (m *mockCache) Get(_ context.Context, code string) (float64, error) {
	if v, ok := m.values[code]; ok {
		return v, nil
	}
	return 0, errorx.ErrCacheMiss
}

func (m *mockCache) Set(_ context.Context, code string, balance float64) error {
	m.sets[code] = balance
	return nil
}

// mockFetcher Tally 客户端 mock
type mockFetcher struct {
	balance float64
	err     error
	calls   int
}

func (m *mockFetcher) GetClosingBalance(context.Context, string) (float64, error) {
	m.calls++
	return m.balance, m.err
}

func testRetailer() *etretailer.Retailer {
	return &etretailer.Retailer{ID: 7, Code: "RET-001", Name: "Sharma Mobiles"}
}

func newTestModule(retailers *mockRetailerRepo, ledgers *mockLedgerRepo, cache *mockCache, fetcher *mockFetcher, now time.Time) *LedgerModule {
	m := NewLedgerModule(retailers, ledgers, cache, fetcher, 120*time.Minute, logger.NewNopLogger())
	m.now = func() time.Time { return now }
	return m
}

func TestClosingBalanceRedisHit(t *testing.T) {
	cache := newMockCache()
	cache.values["RET-001"] = 45000
	fetcher := &mockFetcher{balance: 99999}
	m := newTestModule(&mockRetailerRepo{}, &mockLedgerRepo{}, cache, fetcher, time.Now())

	balance, err := m.ClosingBalance(context.Background(), testRetailer())
	if err != nil {
		t.Fatalf("ClosingBalance: %v", err)
	}
	if balance != 45000 {
		t.Errorf("balance = %v, want 45000", balance)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
}

func TestClosingBalanceFreshDBEntry(t *testing.T) {
	now := time.Now()
	cache := newMockCache()
	ledgers := &mockLedgerRepo{latest: &rpledger.CacheEntry{
		RetailerID:     7,
		LedgerName:     "RET-001",
		ClosingBalance: 32000,
		AsOf:           now.Add(-30 * time.Minute),
	}}
	fetcher := &mockFetcher{balance: 99999}
	m := newTestModule(&mockRetailerRepo{}, ledgers, cache, fetcher, now)

	balance, err := m.ClosingBalance(context.Background(), testRetailer())
	if err != nil {
		t.Fatalf("ClosingBalance: %v", err)
	}
	if balance != 32000 {
		t.Errorf("balance = %v, want 32000", balance)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
	// 回填 Redis
	if cache.sets["RET-001"] != 32000 {
		t.Errorf("redis backfill = %v, want 32000", cache.sets["RET-001"])
	}
}

func TestClosingBalanceExpiredEntryRefreshes(t *testing.T) {
	now := time.Now()
	cache := newMockCache()
	ledgers := &mockLedgerRepo{latest: &rpledger.CacheEntry{
		RetailerID:     7,
		LedgerName:     "RET-001",
		ClosingBalance: 32000,
		AsOf:           now.Add(-3 * time.Hour),
	}}
	fetcher := &mockFetcher{balance: 58000}
	m := newTestModule(&mockRetailerRepo{}, ledgers, cache, fetcher, now)

	balance, err := m.ClosingBalance(context.Background(), testRetailer())
	if err != nil {
		t.Fatalf("ClosingBalance: %v", err)
	}
	if balance != 58000 {
		t.Errorf("balance = %v, want 58000", balance)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if len(ledgers.upserted) != 1 || ledgers.upserted[0].ClosingBalance != 58000 {
		t.Errorf("ledger upserts = %+v, want one entry with balance 58000", ledgers.upserted)
	}
	if cache.sets["RET-001"] != 58000 {
		t.Errorf("redis set = %v, want 58000", cache.sets["RET-001"])
	}
}

func TestClosingBalanceStaleFallback(t *testing.T) {
	now := time.Now()
	ledgers := &mockLedgerRepo{latest: &rpledger.CacheEntry{
		RetailerID:     7,
		LedgerName:     "RET-001",
		ClosingBalance: 32000,
		AsOf:           now.Add(-5 * time.Hour),
	}}
	fetcher := &mockFetcher{err: errors.New("connection refused")}
	m := newTestModule(&mockRetailerRepo{}, ledgers, newMockCache(), fetcher, now)

	balance, err := m.ClosingBalance(context.Background(), testRetailer())
	if err != nil {
		t.Fatalf("ClosingBalance: %v", err)
	}
	if balance != 32000 {
		t.Errorf("stale fallback balance = %v, want 32000", balance)
	}
}

func TestClosingBalanceNoCacheAndFetchFails(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("connection refused")}
	m := newTestModule(&mockRetailerRepo{}, &mockLedgerRepo{}, newMockCache(), fetcher, time.Now())

	if _, err := m.ClosingBalance(context.Background(), testRetailer()); err == nil {
		t.Error("expected error when no cache exists and tally is unreachable")
	}
}

func TestClosingBalanceByLedgerUnknownRetailer(t *testing.T) {
	fetcher := &mockFetcher{balance: 12500}
	ledgers := &mockLedgerRepo{}
	m := newTestModule(&mockRetailerRepo{byCode: map[string]*etretailer.Retailer{}}, ledgers, newMockCache(), fetcher, time.Now())

	balance, err := m.ClosingBalanceByLedger(context.Background(), "Some Unknown Ledger")
	if err != nil {
		t.Fatalf("ClosingBalanceByLedger: %v", err)
	}
	if balance != 12500 {
		t.Errorf("balance = %v, want 12500", balance)
	}
	// 未知账本不落缓存
	if len(ledgers.upserted) != 0 {
		t.Errorf("unexpected cache writes: %+v", ledgers.upserted)
	}
}

func TestApplyBalanceWritesBothLayers(t *testing.T) {
	cache := newMockCache()
	ledgers := &mockLedgerRepo{}
	m := newTestModule(&mockRetailerRepo{}, ledgers, cache, &mockFetcher{}, time.Now())

	asOf := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if err := m.ApplyBalance(context.Background(), testRetailer(), "", 41000, asOf); err != nil {
		t.Fatalf("ApplyBalance: %v", err)
	}

	if len(ledgers.upserted) != 1 {
		t.Fatalf("ledger upserts = %d, want 1", len(ledgers.upserted))
	}
	if ledgers.upserted[0].LedgerName != "RET-001" {
		t.Errorf("ledger name = %q, want fallback to retailer code", ledgers.upserted[0].LedgerName)
	}
	if cache.sets["RET-001"] != 41000 {
		t.Errorf("redis set = %v, want 41000", cache.sets["RET-001"])
	}
}
