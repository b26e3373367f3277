package risk

import (
	"fmt"
	"time"
)

// PriceLookup 商品价格查询：返回当前价格，查不到价格时第二个返回值为 false
type PriceLookup func(goodsID string) (float64, bool)

// OrderLine 订单行
type OrderLine struct {
	GoodsID  string
	Quantity int
}

// StockItem 零售商库存快照行
type StockItem struct {
	GoodsID  string
	Quantity int
}

// ActivationEvent 激活事件（一次激活视为一台销量）
type ActivationEvent struct {
	GoodsID     string
	ActivatedAt *time.Time
}

// RecentSalesWindowDays 近期销量统计窗口（天）
const RecentSalesWindowDays = 30

// OrderValue 计算订单总金额
// 查不到价格的商品按 ₹0 计入，并为每一行生成一条审计告警
func OrderValue(lines []OrderLine, lookup PriceLookup) (float64, []string) {
	total := 0.0
	warnings := make([]string, 0)

	for _, line := range lines {
		price, ok := lookup(line.GoodsID)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"Warning: No price found for goods_id %s, treated as ₹0 in order value.", line.GoodsID))
			continue
		}
		total += price * float64(line.Quantity)
	}

	return total, warnings
}

// StockValue 计算零售商库存货值
// 与负库存报表同口径：缺价商品静默按 0 计算，不产生告警
func StockValue(items []StockItem, lookup PriceLookup) float64 {
	total := 0.0
	for _, item := range items {
		if price, ok := lookup(item.GoodsID); ok {
			total += float64(item.Quantity) * price
		}
	}
	return total
}

// RecentSalesValue 以激活事件估算近 windowDays 天的销量金额
// 仅统计激活时间落在 [now-windowDays, now] 内的事件；每次激活按商品现价计一台
func RecentSalesValue(events []ActivationEvent, lookup PriceLookup, now time.Time, windowDays int) float64 {
	since := now.AddDate(0, 0, -windowDays)
	total := 0.0

	for _, ev := range events {
		if ev.ActivatedAt == nil {
			continue
		}
		t := *ev.ActivatedAt
		if t.Before(since) || t.After(now) {
			continue
		}
		if price, ok := lookup(ev.GoodsID); ok {
			total += price
		}
	}

	return total
}
