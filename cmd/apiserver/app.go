package main

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArpitBagaria/dist-backend/internal/app/config"
	"github.com/ArpitBagaria/dist-backend/internal/app/consumer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpactivation"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpinventory"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpledger"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpsynclog"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/mq/lmstfy"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/mysql"
	redisinfra "github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/redis"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/prm"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/tally"
	"github.com/ArpitBagaria/dist-backend/internal/app/modules/mdledger"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/approval"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/prmsync"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/product"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/report"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/retailer"
	tallyhandler "github.com/ArpitBagaria/dist-backend/internal/app/server/handlers/tally"
	"github.com/ArpitBagaria/dist-backend/internal/app/server/routers"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svapproval"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svledger"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svproduct"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svreport"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svsync"
)

// App 组装完成的应用
type App struct {
	Engine          *gin.Engine
	BalanceConsumer *consumer.BalanceConsumer
	Logger          logger.Logger
}

// InitializeApp 按依赖顺序组装应用
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	log, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := mysql.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("auto migrate: %w", err)
	}

	cacheTTL := time.Duration(cfg.Tally.CacheTTLMinutes) * time.Minute
	balanceCache, err := redisinfra.NewBalanceCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis: %w", err)
	}

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		return nil, nil, fmt.Errorf("init lmstfy: %w", err)
	}

	tallyClient := tally.NewClient(cfg.Tally.Host, cfg.Tally.Timeout)

	// 仓储
	retailerRepo := rpretailer.NewRetailerRepository(db)
	productRepo := rpproduct.NewProductRepository(db)
	inventoryRepo := rpinventory.NewInventoryRepository(db)
	activationRepo := rpactivation.NewActivationRepository(db)
	ledgerRepo := rpledger.NewLedgerRepository(db)
	syncLogRepo := rpsynclog.NewSyncLogRepository(db)

	// 模块
	ledgerModule := mdledger.NewLedgerModule(retailerRepo, ledgerRepo, balanceCache, tallyClient, cacheTTL, log)

	// 服务
	approvalService := svapproval.NewApprovalService(retailerRepo, productRepo, inventoryRepo, activationRepo, ledgerModule, log)
	productService := svproduct.NewProductService(productRepo, log)
	reportService := svreport.NewReportService(retailerRepo, productRepo, inventoryRepo, ledgerModule, log)
	ledgerService := svledger.NewLedgerService(retailerRepo, ledgerModule, log)
	syncService := svsync.NewSyncService(retailerRepo, productRepo, inventoryRepo, activationRepo, syncLogRepo,
		prm.ReadFile, cfg.PRM.FilePath, log)

	// HTTP 处理器与路由
	engine := routers.SetupRoutes(
		approval.NewApprovalHandler(approvalService),
		product.NewProductHandler(productService),
		tallyhandler.NewTallyHandler(ledgerService, cfg.Sync.APIKey, cfg.Tally.CacheTTLMinutes),
		report.NewReportHandler(reportService),
		prmsync.NewPrmSyncHandler(syncService),
		retailer.NewRetailerHandler(retailerRepo),
		log,
	)

	// 余额同步消费者
	balanceConsumer := consumer.NewBalanceConsumer(lmstfyClient, ledgerService, &consumer.Config{
		QueueName:    cfg.Lmstfy.SyncQueue,
		Timeout:      3 * time.Second,
		TTR:          30 * time.Second,
		PollInterval: 2 * time.Second,
	}, log)

	cleanup := func() {
		_ = balanceCache.Close()
		_ = mysql.Close(db)
		_ = log.Sync()
	}

	return &App{
		Engine:          engine,
		BalanceConsumer: balanceConsumer,
		Logger:          log,
	}, cleanup, nil
}
