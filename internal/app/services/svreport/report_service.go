package svreport

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/business/risk"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpinventory"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// LedgerBalancer 账本余额查询接口（mdledger 实现）
type LedgerBalancer interface {
	ClosingBalance(ctx context.Context, retailer *etretailer.Retailer) (float64, error)
}

// NegativeRow OD 报表中的一行
type NegativeRow struct {
	RetailerCode   string
	RetailerName   string
	ClosingBalance float64
	StockValue     float64
	ODAmount       float64
}

// NegativeReport OD 报表
type NegativeReport struct {
	GeneratedAt time.Time
	Rows        []NegativeRow
}

// ReportService OD 报表服务
// 对比各零售商的 Tally 期末余额与库存货值，余额高于货值即为 OD
type ReportService struct {
	retailerRepo  rpretailer.RetailerRepository
	productRepo   rpproduct.ProductRepository
	inventoryRepo rpinventory.InventoryRepository
	ledger        LedgerBalancer
	log           logger.Logger
}

// NewReportService 创建报表服务
func NewReportService(
	retailerRepo rpretailer.RetailerRepository,
	productRepo rpproduct.ProductRepository,
	inventoryRepo rpinventory.InventoryRepository,
	ledger LedgerBalancer,
	log logger.Logger,
) *ReportService {
	return &ReportService{
		retailerRepo:  retailerRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		ledger:        ledger,
		log:           log,
	}
}

// Negative 生成 OD 报表，按 OD 金额降序
// 余额获取失败的零售商跳过不报错
func (s *ReportService) Negative(ctx context.Context) (*NegativeReport, error) {
	retailers, err := s.retailerRepo.ListWithInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list retailers with inventory: %w", err)
	}

	priceMap, err := s.productRepo.PriceMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("load price map: %w", err)
	}
	lookup := func(goodsID string) (float64, bool) {
		price, ok := priceMap[goodsID]
		return price, ok
	}

	rows := make([]NegativeRow, 0)
	for _, retailer := range retailers {
		stockRows, err := s.inventoryRepo.ListByRetailer(ctx, retailer.ID)
		if err != nil {
			s.log.Warnf(ctx, "report: inventory lookup failed for %s: %v", retailer.Code, err)
			continue
		}
		stockItems := make([]risk.StockItem, 0, len(stockRows))
		for _, row := range stockRows {
			stockItems = append(stockItems, risk.StockItem{GoodsID: row.GoodsID, Quantity: row.Quantity})
		}
		stockValue := risk.StockValue(stockItems, lookup)

		balance, err := s.ledger.ClosingBalance(ctx, retailer)
		if err != nil {
			s.log.Warnf(ctx, "report: could not get balance for %s: %v", retailer.Code, err)
			continue
		}

		odAmount := balance - stockValue
		if odAmount <= 0 {
			continue
		}

		rows = append(rows, NegativeRow{
			RetailerCode:   retailer.Code,
			RetailerName:   retailer.Name,
			ClosingBalance: round2(balance),
			StockValue:     round2(stockValue),
			ODAmount:       round2(odAmount),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ODAmount > rows[j].ODAmount
	})

	return &NegativeReport{
		GeneratedAt: time.Now(),
		Rows:        rows,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
