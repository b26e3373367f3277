package svapproval

import (
	"context"
	"fmt"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/business/risk"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpactivation"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpinventory"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/errorx"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// LedgerBalancer 账本余额查询接口（mdledger 实现）
type LedgerBalancer interface {
	ClosingBalance(ctx context.Context, retailer *etretailer.Retailer) (float64, error)
}

// OrderItem 待审批订单的一行
type OrderItem struct {
	GoodsID  string
	Quantity int
}

// DecisionPayload 审批结果
type DecisionPayload struct {
	Decision            risk.Decision
	RiskScore           float64
	OrderValue          float64
	ODAmount            float64
	RecentSales30dValue float64
	RulesTriggered      []string
}

// ApprovalService 订单自动审批服务
type ApprovalService struct {
	retailerRepo   rpretailer.RetailerRepository
	productRepo    rpproduct.ProductRepository
	inventoryRepo  rpinventory.InventoryRepository
	activationRepo rpactivation.ActivationRepository
	ledger         LedgerBalancer
	log            logger.Logger

	now func() time.Time
}

// NewApprovalService 创建审批服务
func NewApprovalService(
	retailerRepo rpretailer.RetailerRepository,
	productRepo rpproduct.ProductRepository,
	inventoryRepo rpinventory.InventoryRepository,
	activationRepo rpactivation.ActivationRepository,
	ledger LedgerBalancer,
	log logger.Logger,
) *ApprovalService {
	return &ApprovalService{
		retailerRepo:   retailerRepo,
		productRepo:    productRepo,
		inventoryRepo:  inventoryRepo,
		activationRepo: activationRepo,
		ledger:         ledger,
		log:            log,
		now:            time.Now,
	}
}

// EvaluateOrder 对一笔订单做自动审批
func (s *ApprovalService) EvaluateOrder(ctx context.Context, retailerCode string, items []OrderItem) (*DecisionPayload, error) {
	// 1. 查询零售商，不存在为终态错误
	retailer, err := s.retailerRepo.GetByCode(ctx, retailerCode)
	if err != nil {
		return nil, fmt.Errorf("query retailer %s: %w", retailerCode, err)
	}
	if retailer == nil {
		return nil, fmt.Errorf("retailer with code %s: %w", retailerCode, errorx.ErrRetailerNotFound)
	}

	// 2. 取一次价格快照，后续各项计算共用同一口径
	priceMap, err := s.productRepo.PriceMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("load price map: %w", err)
	}
	lookup := func(goodsID string) (float64, bool) {
		price, ok := priceMap[goodsID]
		return price, ok
	}

	// 3. 订单金额（缺价行带审计告警）
	lines := make([]risk.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, risk.OrderLine{GoodsID: item.GoodsID, Quantity: item.Quantity})
	}
	orderValue, warnings := risk.OrderValue(lines, lookup)

	// 4. 库存货值
	stockRows, err := s.inventoryRepo.ListByRetailer(ctx, retailer.ID)
	if err != nil {
		return nil, fmt.Errorf("load inventory for %s: %w", retailerCode, err)
	}
	stockItems := make([]risk.StockItem, 0, len(stockRows))
	for _, row := range stockRows {
		stockItems = append(stockItems, risk.StockItem{GoodsID: row.GoodsID, Quantity: row.Quantity})
	}
	stockValue := risk.StockValue(stockItems, lookup)

	// 5. 账本余额；Tally 不可达时按 closing = stockValue 放行计算（OD 记 0），留告警
	closingBalance, err := s.ledger.ClosingBalance(ctx, retailer)
	if err != nil {
		s.log.Warnf(ctx, "tally unavailable for %s, evaluating with zero OD: %v", retailerCode, err)
		closingBalance = stockValue
		warnings = append(warnings, fmt.Sprintf("Warning: Could not fetch Tally for %s: %v", retailerCode, err))
	}
	odAmount := closingBalance - stockValue

	// 6. 近 30 天销量金额
	now := s.now()
	since := now.AddDate(0, 0, -risk.RecentSalesWindowDays)
	activations, err := s.activationRepo.ListActivatedSince(ctx, retailer.ID, since)
	if err != nil {
		return nil, fmt.Errorf("load activations for %s: %w", retailerCode, err)
	}
	events := make([]risk.ActivationEvent, 0, len(activations))
	for _, act := range activations {
		events = append(events, risk.ActivationEvent{GoodsID: act.GoodsID, ActivatedAt: act.ActivatedAt})
	}
	recentSales := risk.RecentSalesValue(events, lookup, now, risk.RecentSalesWindowDays)

	// 7. 打分并出决策
	assessment := risk.Decide(orderValue, odAmount, recentSales)

	// 8. 告警在前，规则在后
	rules := make([]string, 0, len(warnings)+len(assessment.Reasons))
	rules = append(rules, warnings...)
	rules = append(rules, assessment.Reasons...)

	s.log.Infof(ctx, "approval decision for %s: %s (risk=%.0f, order=%.2f, od=%.2f)",
		retailerCode, assessment.Decision, assessment.RiskScore, orderValue, odAmount)

	return &DecisionPayload{
		Decision:            assessment.Decision,
		RiskScore:           assessment.RiskScore,
		OrderValue:          orderValue,
		ODAmount:            odAmount,
		RecentSales30dValue: recentSales,
		RulesTriggered:      rules,
	}, nil
}
