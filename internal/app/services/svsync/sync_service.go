package svsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/domains/entity/etproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpactivation"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpinventory"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpsynclog"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/prm"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// inwardStatus 计入库存快照的状态标记
const inwardStatus = "inward by retailer"

// FileReader PRM 文件读取接口（infra/prm 实现）
type FileReader func(path string) ([]prm.Row, bool, error)

// RunResult 一次导入的结果
type RunResult struct {
	RunID int64
	Stats rpsynclog.ImportStats
}

// SyncService PRM 导入服务
type SyncService struct {
	retailerRepo   rpretailer.RetailerRepository
	productRepo    rpproduct.ProductRepository
	inventoryRepo  rpinventory.InventoryRepository
	activationRepo rpactivation.ActivationRepository
	syncLogRepo    rpsynclog.SyncLogRepository
	readFile       FileReader
	filePath       string
	log            logger.Logger
}

// NewSyncService 创建 PRM 导入服务
func NewSyncService(
	retailerRepo rpretailer.RetailerRepository,
	productRepo rpproduct.ProductRepository,
	inventoryRepo rpinventory.InventoryRepository,
	activationRepo rpactivation.ActivationRepository,
	syncLogRepo rpsynclog.SyncLogRepository,
	readFile FileReader,
	filePath string,
	log logger.Logger,
) *SyncService {
	return &SyncService{
		retailerRepo:   retailerRepo,
		productRepo:    productRepo,
		inventoryRepo:  inventoryRepo,
		activationRepo: activationRepo,
		syncLogRepo:    syncLogRepo,
		readFile:       readFile,
		filePath:       filePath,
		log:            log,
	}
}

// Run 执行一次 PRM 文件导入
// 零售商/商品增量 upsert，库存快照与激活数据整表重建
func (s *SyncService) Run(ctx context.Context) (*RunResult, error) {
	runID, err := s.syncLogRepo.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("start sync run log: %w", err)
	}

	stats, err := s.runImport(ctx)
	if err != nil {
		if logErr := s.syncLogRepo.FinishError(ctx, runID, err.Error()); logErr != nil {
			s.log.Errorf(ctx, "prm sync: finish error log failed: %v", logErr)
		}
		return nil, fmt.Errorf("prm sync failed: %w", err)
	}

	rowsImported := stats.RetailersUpserted + stats.ProductsUpserted + stats.InventoryRows + stats.ActivationRows
	if err := s.syncLogRepo.FinishSuccess(ctx, runID, rowsImported, *stats); err != nil {
		s.log.Errorf(ctx, "prm sync: finish success log failed: %v", err)
	}

	s.log.Infof(ctx, "prm sync run %d done: %d retailers, %d products, %d inventory rows, %d activations",
		runID, stats.RetailersUpserted, stats.ProductsUpserted, stats.InventoryRows, stats.ActivationRows)

	return &RunResult{RunID: runID, Stats: *stats}, nil
}

// RecentLogs 查询最近的导入记录
func (s *SyncService) RecentLogs(ctx context.Context, limit int) ([]rpsynclog.RunLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.syncLogRepo.ListRecent(ctx, limit)
}

func (s *SyncService) runImport(ctx context.Context) (*rpsynclog.ImportStats, error) {
	rows, enoughColumns, err := s.readFile(s.filePath)
	if err != nil {
		return nil, err
	}
	if !enoughColumns {
		s.log.Warnf(ctx, "prm sync: file %s has fewer columns than expected, results may be incorrect", s.filePath)
	}
	s.log.Infof(ctx, "prm sync: read %d rows from %s", len(rows), s.filePath)

	agg := aggregate(rows)

	stats := &rpsynclog.ImportStats{}

	// 1. 零售商 upsert，记录编码到 ID 的映射
	retailerIDs := make(map[string]int64, len(agg.retailers))
	for _, r := range agg.retailers {
		retailer, created, err := s.retailerRepo.Upsert(ctx, r.Code, r.Name)
		if err != nil {
			return nil, fmt.Errorf("upsert retailer %s: %w", r.Code, err)
		}
		retailerIDs[r.Code] = retailer.ID
		if created {
			stats.RetailersUpserted++
		}
	}

	// 2. 商品 upsert（不触碰价格）
	for _, p := range agg.products {
		created, err := s.productRepo.Upsert(ctx, p.GoodsID, p.Name, p.Category)
		if err != nil {
			return nil, fmt.Errorf("upsert product %s: %w", p.GoodsID, err)
		}
		if created {
			stats.ProductsUpserted++
		}
	}

	// 3. 库存快照整表重建
	snapshotRows := make([]rpinventory.SnapshotRow, 0, len(agg.inventory))
	for _, inv := range agg.inventory {
		retailerID, ok := retailerIDs[inv.RetailerCode]
		if !ok {
			continue
		}
		snapshotRows = append(snapshotRows, rpinventory.SnapshotRow{
			RetailerID: retailerID,
			GoodsID:    inv.GoodsID,
			Quantity:   inv.Quantity,
		})
	}
	if err := s.inventoryRepo.ReplaceAll(ctx, snapshotRows); err != nil {
		return nil, fmt.Errorf("rebuild inventory snapshot: %w", err)
	}
	stats.InventoryRows = len(snapshotRows)

	// 4. 激活数据整表重建
	activationRows := make([]rpactivation.ImportRow, 0, len(agg.activations))
	for _, act := range agg.activations {
		row := rpactivation.ImportRow{
			GoodsID:          act.GoodsID,
			ImeiSN:           act.Imei1,
			ActivationStatus: "Activated",
			ActivationTime:   act.ActivationTime,
		}
		if id, ok := retailerIDs[act.RetailerCode]; ok {
			retailerID := id
			row.RetailerID = &retailerID
		}
		activationRows = append(activationRows, row)
	}
	if err := s.activationRepo.ReplaceAll(ctx, activationRows); err != nil {
		return nil, fmt.Errorf("rebuild activations: %w", err)
	}
	stats.ActivationRows = len(activationRows)

	return stats, nil
}

// retailerRow 聚合后的零售商
type retailerRow struct {
	Code string
	Name string
}

// productRow 聚合后的商品
type productRow struct {
	GoodsID  string
	Name     string
	Category string
}

// inventoryRow 聚合后的库存行
type inventoryRow struct {
	RetailerCode string
	GoodsID      string
	Quantity     int
}

// activationRow 聚合后的激活事件
type activationRow struct {
	GoodsID        string
	Imei1          string
	RetailerCode   string
	ActivationTime *time.Time
}

// aggregates 单次文件的聚合结果
type aggregates struct {
	retailers   []retailerRow
	products    []productRow
	inventory   []inventoryRow
	activations []activationRow
}

// aggregate 把原始行聚合为可落库的数据集（纯函数）
// 无 goods_id 的行跳过；同一编码后出现的名称覆盖先前的
func aggregate(rows []prm.Row) *aggregates {
	agg := &aggregates{}

	retailerIdx := make(map[string]int)
	productIdx := make(map[string]int)
	inventoryIdx := make(map[string]int)

	for _, row := range rows {
		if row.GoodsID == "" {
			continue
		}

		hasRetailer := row.RetailerCode != "" && row.RetailerName != ""
		if hasRetailer {
			if idx, ok := retailerIdx[row.RetailerCode]; ok {
				agg.retailers[idx].Name = row.RetailerName
			} else {
				retailerIdx[row.RetailerCode] = len(agg.retailers)
				agg.retailers = append(agg.retailers, retailerRow{Code: row.RetailerCode, Name: row.RetailerName})
			}
		}

		category := etproduct.Categorize(row.ProductName)
		if idx, ok := productIdx[row.GoodsID]; ok {
			if row.ProductName != "" {
				agg.products[idx].Name = row.ProductName
				agg.products[idx].Category = category
			}
		} else {
			productIdx[row.GoodsID] = len(agg.products)
			agg.products = append(agg.products, productRow{
				GoodsID:  row.GoodsID,
				Name:     row.ProductName,
				Category: category,
			})
		}

		if hasRetailer && strings.Contains(row.Status, inwardStatus) {
			key := row.RetailerCode + "\x00" + row.GoodsID
			if idx, ok := inventoryIdx[key]; ok {
				agg.inventory[idx].Quantity++
			} else {
				inventoryIdx[key] = len(agg.inventory)
				agg.inventory = append(agg.inventory, inventoryRow{
					RetailerCode: row.RetailerCode,
					GoodsID:      row.GoodsID,
					Quantity:     1,
				})
			}
		}

		if row.ActivationTime != nil && row.Imei1 != "" {
			act := activationRow{
				GoodsID:        row.GoodsID,
				Imei1:          row.Imei1,
				ActivationTime: row.ActivationTime,
			}
			if hasRetailer {
				act.RetailerCode = row.RetailerCode
			}
			agg.activations = append(agg.activations, act)
		}
	}

	return agg
}
