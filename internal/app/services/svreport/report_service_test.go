package svreport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpinventory"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

type mockRetailerRepo struct {
	withInventory []*etretailer.Retailer
}

func (m *mockRetailerRepo) GetByCode(context.Context, string) (*etretailer.Retailer, error) {
	return nil, nil
}

func (m *mockRetailerRepo) List(context.Context) ([]*etretailer.Retailer, error) { return nil, nil }

func (m *mockRetailerRepo) ListCodes(context.Context) ([]string, error) { return nil, nil }

func (m *mockRetailerRepo) ListWithInventory(context.Context) ([]*etretailer.Retailer, error) {
	return m.withInventory, nil
}

func (m *mockRetailerRepo) Upsert(context.Context, string, string) (*etretailer.Retailer, bool, error) {
	return nil, false, nil
}

type mockProductRepo struct {
	prices map[string]float64
}

func (m *mockProductRepo) GetByGoodsID(context.Context, string) (*etproduct.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) PriceMap(context.Context) (map[string]float64, error) {
	return m.prices, nil
}

func (m *mockProductRepo) Upsert(context.Context, string, string, string) (bool, error) {
	return false, nil
}

func (m *mockProductRepo) ApplyPriceUpdate(context.Context, rpproduct.PriceUpdate) (bool, error) {
	return false, nil
}

func (m *mockProductRepo) ListPriceHistory(context.Context, int) ([]rpproduct.PriceChange, error) {
	return nil, nil
}

type mockInventoryRepo struct {
	byRetailer map[int64][]rpinventory.StockRow
}

func (m *mockInventoryRepo) ListByRetailer(_ context.Context, retailerID int64) ([]rpinventory.StockRow, error) {
	return m.byRetailer[retailerID], nil
}

func (m *mockInventoryRepo) ReplaceAll(context.Context, []rpinventory.SnapshotRow) error { return nil }

type mockLedger struct {
	balances map[string]float64
	errs     map[string]error
}

func (m *mockLedger) ClosingBalance(_ context.Context, retailer *etretailer.Retailer) (float64, error) {
	if err, ok := m.errs[retailer.Code]; ok {
		return 0, err
	}
	return m.balances[retailer.Code], nil
}

func TestNegativeReport(t *testing.T) {
	retailers := &mockRetailerRepo{withInventory: []*etretailer.Retailer{
		{ID: 1, Code: "RET-001", Name: "Sharma Mobiles"},
		{ID: 2, Code: "RET-002", Name: "Verma Traders"},
		{ID: 3, Code: "RET-003", Name: "Gupta Electronics"},
		{ID: 4, Code: "RET-004", Name: "Unreachable Shop"},
	}}
	products := &mockProductRepo{prices: map[string]float64{"G-1": 10_000}}
	inventory := &mockInventoryRepo{byRetailer: map[int64][]rpinventory.StockRow{
		1: {{GoodsID: "G-1", Quantity: 2}}, // 货值 20_000
		2: {{GoodsID: "G-1", Quantity: 5}}, // 货值 50_000
		3: {{GoodsID: "G-1", Quantity: 1}}, // 货值 10_000
		4: {{GoodsID: "G-1", Quantity: 1}},
	}}
	ledger := &mockLedger{
		balances: map[string]float64{
			"RET-001": 25_000, // OD 5_000
			"RET-002": 40_000, // OD -10_000，不入报表
			"RET-003": 90_000, // OD 80_000
		},
		errs: map[string]error{"RET-004": errors.New("timeout")},
	}

	svc := NewReportService(retailers, products, inventory, ledger, logger.NewNopLogger())

	report, err := svc.Negative(context.Background())
	if err != nil {
		t.Fatalf("Negative: %v", err)
	}

	if len(report.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(report.Rows))
	}
	// OD 降序
	if report.Rows[0].RetailerCode != "RET-003" || report.Rows[0].ODAmount != 80_000 {
		t.Errorf("rows[0] = %+v, want RET-003 with OD 80000", report.Rows[0])
	}
	if report.Rows[1].RetailerCode != "RET-001" || report.Rows[1].ODAmount != 5_000 {
		t.Errorf("rows[1] = %+v, want RET-001 with OD 5000", report.Rows[1])
	}
	if report.GeneratedAt.IsZero() || report.GeneratedAt.After(time.Now().Add(time.Second)) {
		t.Errorf("generated_at = %v, want recent timestamp", report.GeneratedAt)
	}
}

func TestNegativeReportRounds(t *testing.T) {
	retailers := &mockRetailerRepo{withInventory: []*etretailer.Retailer{
		{ID: 1, Code: "RET-001", Name: "Sharma Mobiles"},
	}}
	products := &mockProductRepo{prices: map[string]float64{"G-1": 333.333}}
	inventory := &mockInventoryRepo{byRetailer: map[int64][]rpinventory.StockRow{
		1: {{GoodsID: "G-1", Quantity: 3}}, // 999.999
	}}
	ledger := &mockLedger{balances: map[string]float64{"RET-001": 2_000}}

	svc := NewReportService(retailers, products, inventory, ledger, logger.NewNopLogger())

	report, err := svc.Negative(context.Background())
	if err != nil {
		t.Fatalf("Negative: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(report.Rows))
	}
	if report.Rows[0].StockValue != 1000.00 {
		t.Errorf("stock value = %v, want 1000.00", report.Rows[0].StockValue)
	}
	if report.Rows[0].ODAmount != 1000.00 {
		t.Errorf("od amount = %v, want 1000.00", report.Rows[0].ODAmount)
	}
}
