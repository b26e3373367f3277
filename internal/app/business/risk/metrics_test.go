package risk

import (
	"strings"
	"testing"
	"time"
)

func mapLookup(prices map[string]float64) PriceLookup {
	return func(goodsID string) (float64, bool) {
		p, ok := prices[goodsID]
		return p, ok
	}
}

func TestOrderValue(t *testing.T) {
	lookup := mapLookup(map[string]float64{
		"G-1": 100,
		"G-2": 250.5,
	})

	lines := []OrderLine{
		{GoodsID: "G-1", Quantity: 2},
		{GoodsID: "G-2", Quantity: 1},
	}

	total, warnings := OrderValue(lines, lookup)
	if total != 450.5 {
		t.Errorf("expected total 450.5, got %v", total)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestOrderValue_UnpricedLineWarnsAndCountsZero(t *testing.T) {
	lookup := mapLookup(map[string]float64{"G-1": 100})

	lines := []OrderLine{
		{GoodsID: "G-1", Quantity: 3},
		{GoodsID: "G-404", Quantity: 5},
	}

	total, warnings := OrderValue(lines, lookup)
	if total != 300 {
		t.Errorf("unpriced line must contribute 0: expected 300, got %v", total)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "G-404") || !strings.Contains(warnings[0], "treated as ₹0") {
		t.Errorf("warning must name the goods_id and the zero treatment, got %q", warnings[0])
	}
}

func TestOrderValue_OneWarningPerUnpricedLine(t *testing.T) {
	lookup := mapLookup(nil)

	lines := []OrderLine{
		{GoodsID: "G-404", Quantity: 1},
		{GoodsID: "G-405", Quantity: 1},
	}

	total, warnings := OrderValue(lines, lookup)
	if total != 0 {
		t.Errorf("expected total 0, got %v", total)
	}
	if len(warnings) != 2 {
		t.Errorf("expected one warning per unpriced line, got %v", warnings)
	}
}

func TestStockValue(t *testing.T) {
	lookup := mapLookup(map[string]float64{"G-1": 10, "G-2": 20})

	items := []StockItem{
		{GoodsID: "G-1", Quantity: 4},
		{GoodsID: "G-2", Quantity: 2},
		{GoodsID: "G-404", Quantity: 100}, // 缺价商品静默按 0
	}

	if got := StockValue(items, lookup); got != 80 {
		t.Errorf("expected stock value 80, got %v", got)
	}
}

func TestRecentSalesValue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	lookup := mapLookup(map[string]float64{"G-1": 1_000, "G-2": 500})

	inWindow := now.AddDate(0, 0, -10)
	atLowerBound := now.AddDate(0, 0, -RecentSalesWindowDays)
	tooOld := now.AddDate(0, 0, -31)
	future := now.Add(time.Hour)

	events := []ActivationEvent{
		{GoodsID: "G-1", ActivatedAt: &inWindow},
		{GoodsID: "G-2", ActivatedAt: &atLowerBound}, // 窗口下界含端点
		{GoodsID: "G-1", ActivatedAt: &tooOld},
		{GoodsID: "G-1", ActivatedAt: &future},
		{GoodsID: "G-1", ActivatedAt: nil},
		{GoodsID: "G-404", ActivatedAt: &inWindow}, // 缺价商品不计
	}

	got := RecentSalesValue(events, lookup, now, RecentSalesWindowDays)
	if got != 1_500 {
		t.Errorf("expected 1500, got %v", got)
	}
}

func TestRecentSalesValue_CountsPricePerActivation(t *testing.T) {
	now := time.Now()
	ts := now.AddDate(0, 0, -1)
	lookup := mapLookup(map[string]float64{"G-1": 700})

	// 两次激活 = 两台，不按订单数量加权
	events := []ActivationEvent{
		{GoodsID: "G-1", ActivatedAt: &ts},
		{GoodsID: "G-1", ActivatedAt: &ts},
	}

	if got := RecentSalesValue(events, lookup, now, RecentSalesWindowDays); got != 1_400 {
		t.Errorf("expected 1400, got %v", got)
	}
}
