package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArpitBagaria/dist-backend/internal/agent"
	"github.com/ArpitBagaria/dist-backend/internal/app/config"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/mq/lmstfy"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/persistence/mysql"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/tally"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/agent.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single sync round and exit")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	zapLog, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLog.Sync()

	// 2. 初始化依赖
	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to open mysql: %v", err)
	}
	defer mysql.Close(db)

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		log.Fatalf("Failed to init lmstfy: %v", err)
	}

	tallyClient := tally.NewClient(cfg.Tally.Host, cfg.Tally.Timeout)
	retailerRepo := rpretailer.NewRetailerRepository(db)

	syncAgent := agent.NewAgent(retailerRepo, tallyClient, lmstfyClient, agent.Config{
		Interval:  cfg.Agent.Interval,
		SyncQueue: cfg.Lmstfy.SyncQueue,
	}, zapLog)

	// 3. 单轮模式
	if *once {
		if err := syncAgent.SyncOnce(context.Background()); err != nil {
			log.Fatalf("Sync round failed: %v", err)
		}
		return
	}

	// 4. 常驻模式，随信号优雅退出
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping agent...")
		cancel()
	}()

	if err := syncAgent.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Agent error: %v", err)
	}

	log.Println("Agent stopped")
}
