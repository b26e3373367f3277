package svsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpactivation"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpinventory"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpsynclog"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/prm"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestAggregateSkipsRowsWithoutGoodsID(t *testing.T) {
	agg := aggregate([]prm.Row{
		{Imei1: "865", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		{GoodsID: "G-1", ProductName: "Redmi Note 13 5G", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
	})

	if len(agg.products) != 1 {
		t.Errorf("products = %d, want 1", len(agg.products))
	}
	if len(agg.retailers) != 1 {
		t.Errorf("retailers = %d, want 1", len(agg.retailers))
	}
}

func TestAggregateInventoryCountsInwardRows(t *testing.T) {
	rows := []prm.Row{
		{GoodsID: "G-1", ProductName: "Redmi 13C", Status: "inward by retailer", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		{GoodsID: "G-1", ProductName: "Redmi 13C", Status: "inward by retailer", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		{GoodsID: "G-1", ProductName: "Redmi 13C", Status: "sold", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		{GoodsID: "G-2", ProductName: "Mi TV A 32", Status: "inward by retailer", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		// 无零售商的行不计库存
		{GoodsID: "G-1", ProductName: "Redmi 13C", Status: "inward by retailer"},
	}

	agg := aggregate(rows)

	if len(agg.inventory) != 2 {
		t.Fatalf("inventory rows = %d, want 2", len(agg.inventory))
	}
	if agg.inventory[0].GoodsID != "G-1" || agg.inventory[0].Quantity != 2 {
		t.Errorf("inventory[0] = %+v, want G-1 x2", agg.inventory[0])
	}
	if agg.inventory[1].GoodsID != "G-2" || agg.inventory[1].Quantity != 1 {
		t.Errorf("inventory[1] = %+v, want G-2 x1", agg.inventory[1])
	}
}

func TestAggregateActivations(t *testing.T) {
	rows := []prm.Row{
		{GoodsID: "G-1", Imei1: "865123", ActivationTime: ts("2025-06-01 10:00:00"), RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		// 无 IMEI 不计激活
		{GoodsID: "G-1", ActivationTime: ts("2025-06-02 10:00:00"), RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		// 无激活时间不计激活
		{GoodsID: "G-1", Imei1: "865456", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		// 无零售商的激活保留，零售商字段留空
		{GoodsID: "G-2", Imei1: "865789", ActivationTime: ts("2025-06-03 10:00:00")},
	}

	agg := aggregate(rows)

	if len(agg.activations) != 2 {
		t.Fatalf("activations = %d, want 2", len(agg.activations))
	}
	if agg.activations[0].Imei1 != "865123" || agg.activations[0].RetailerCode != "RET-001" {
		t.Errorf("activations[0] = %+v", agg.activations[0])
	}
	if agg.activations[1].RetailerCode != "" {
		t.Errorf("activations[1].RetailerCode = %q, want empty", agg.activations[1].RetailerCode)
	}
}

func TestAggregateLastNameWins(t *testing.T) {
	rows := []prm.Row{
		{GoodsID: "G-1", ProductName: "Old Name", RetailerCode: "RET-001", RetailerName: "Old Shop"},
		{GoodsID: "G-1", ProductName: "Redmi Note 13 5G", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
	}

	agg := aggregate(rows)

	if len(agg.retailers) != 1 || agg.retailers[0].Name != "Sharma Mobiles" {
		t.Errorf("retailers = %+v, want single entry with latest name", agg.retailers)
	}
	if len(agg.products) != 1 || agg.products[0].Name != "Redmi Note 13 5G" {
		t.Errorf("products = %+v, want single entry with latest name", agg.products)
	}
	if agg.products[0].Category != etproduct.CategoryPhones {
		t.Errorf("category = %q, want Phones", agg.products[0].Category)
	}
}

// --- Run 编排测试 ---

type mockRetailerRepo struct {
	nextID  int64
	created map[string]int64
}

func (m *mockRetailerRepo) GetByCode(context.Context, string) (*etretailer.Retailer, error) {
	return nil, nil
}

func (m *mockRetailerRepo) List(context.Context) ([]*etretailer.Retailer, error) { return nil, nil }

func (m *mockRetailerRepo) ListCodes(context.Context) ([]string, error) { return nil, nil }

func (m *mockRetailerRepo) ListWithInventory(context.Context) ([]*etretailer.Retailer, error) {
	return nil, nil
}

func (m *mockRetailerRepo) Upsert(_ context.Context, code, name string) (*etretailer.Retailer, bool, error) {
	if id, ok := m.created[code]; ok {
		return &etretailer.Retailer{ID: id, Code: code, Name: name}, false, nil
	}
	m.nextID++
	m.created[code] = m.nextID
	return &etretailer.Retailer{ID: m.nextID, Code: code, Name: name}, true, nil
}

type mockProductRepo struct {
	created map[string]bool
}

func (m *mockProductRepo) GetByGoodsID(context.Context, string) (*etproduct.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) PriceMap(context.Context) (map[string]float64, error) { return nil, nil }

func (m *mockProductRepo) Upsert(_ context.Context, goodsID, _, _ string) (bool, error) {
	if m.created[goodsID] {
		return false, nil
	}
	m.created[goodsID] = true
	return true, nil
}

func (m *mockProductRepo) ApplyPriceUpdate(context.Context, rpproduct.PriceUpdate) (bool, error) {
	return false, nil
}

func (m *mockProductRepo) ListPriceHistory(context.Context, int) ([]rpproduct.PriceChange, error) {
	return nil, nil
}

type mockInventoryRepo struct {
	replaced []rpinventory.SnapshotRow
}

func (m *mockInventoryRepo) ListByRetailer(context.Context, int64) ([]rpinventory.StockRow, error) {
	return nil, nil
}

func (m *mockInventoryRepo) ReplaceAll(_ context.Context, rows []rpinventory.SnapshotRow) error {
	m.replaced = rows
	return nil
}

type mockActivationRepo struct {
	replaced []rpactivation.ImportRow
}

func (m *mockActivationRepo) ListActivatedSince(context.Context, int64, time.Time) ([]rpactivation.Event, error) {
	return nil, nil
}

func (m *mockActivationRepo) ReplaceAll(_ context.Context, rows []rpactivation.ImportRow) error {
	m.replaced = rows
	return nil
}

type mockSyncLogRepo struct {
	started    int
	successes  []rpsynclog.ImportStats
	lastErrMsg string
}

func (m *mockSyncLogRepo) Start(context.Context) (int64, error) {
	m.started++
	return int64(m.started), nil
}

func (m *mockSyncLogRepo) FinishSuccess(_ context.Context, _ int64, _ int, stats rpsynclog.ImportStats) error {
	m.successes = append(m.successes, stats)
	return nil
}

func (m *mockSyncLogRepo) FinishError(_ context.Context, _ int64, errMsg string) error {
	m.lastErrMsg = errMsg
	return nil
}

func (m *mockSyncLogRepo) ListRecent(context.Context, int) ([]rpsynclog.RunLog, error) {
	return nil, nil
}

func newTestService(reader FileReader, syncLogs *mockSyncLogRepo, inventory *mockInventoryRepo, activations *mockActivationRepo) *SyncService {
	return NewSyncService(
		&mockRetailerRepo{created: map[string]int64{}},
		&mockProductRepo{created: map[string]bool{}},
		inventory,
		activations,
		syncLogs,
		reader,
		"prm_imei_sample.xlsx",
		logger.NewNopLogger(),
	)
}

func TestRunImportsAndLogsSuccess(t *testing.T) {
	rows := []prm.Row{
		{GoodsID: "G-1", ProductName: "Redmi 13C", Status: "inward by retailer", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		{GoodsID: "G-1", ProductName: "Redmi 13C", Status: "inward by retailer", RetailerCode: "RET-001", RetailerName: "Sharma Mobiles"},
		{GoodsID: "G-2", Imei1: "865123", ProductName: "Mi TV A 32", ActivationTime: ts("2025-06-01 09:00:00"), RetailerCode: "RET-002", RetailerName: "Verma Traders"},
	}
	reader := func(string) ([]prm.Row, bool, error) { return rows, true, nil }

	syncLogs := &mockSyncLogRepo{}
	inventory := &mockInventoryRepo{}
	activations := &mockActivationRepo{}
	svc := newTestService(reader, syncLogs, inventory, activations)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := rpsynclog.ImportStats{
		RetailersUpserted: 2,
		ProductsUpserted:  2,
		InventoryRows:     1,
		ActivationRows:    1,
	}
	if result.Stats != want {
		t.Errorf("stats = %+v, want %+v", result.Stats, want)
	}
	if len(inventory.replaced) != 1 || inventory.replaced[0].Quantity != 2 {
		t.Errorf("inventory snapshot = %+v, want single G-1 x2 row", inventory.replaced)
	}
	if len(activations.replaced) != 1 || activations.replaced[0].RetailerID == nil {
		t.Errorf("activations = %+v, want one row with retailer id", activations.replaced)
	}
	if len(syncLogs.successes) != 1 {
		t.Errorf("success logs = %d, want 1", len(syncLogs.successes))
	}
}

func TestRunLogsErrorWhenFileUnreadable(t *testing.T) {
	reader := func(string) ([]prm.Row, bool, error) {
		return nil, false, errors.New("file not found: prm_imei_sample.xlsx")
	}

	syncLogs := &mockSyncLogRepo{}
	svc := newTestService(reader, syncLogs, &mockInventoryRepo{}, &mockActivationRepo{})

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error when file is unreadable")
	}
	if syncLogs.lastErrMsg == "" {
		t.Error("expected error message recorded in run log")
	}
	if len(syncLogs.successes) != 0 {
		t.Error("unexpected success log entry")
	}
}
