package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/ArpitBagaria/dist-backend/internal/app/consumer"
	"github.com/ArpitBagaria/dist-backend/internal/app/domains/repo/rpretailer"
	"github.com/ArpitBagaria/dist-backend/internal/app/infra/mq/lmstfy"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
)

// jobTTL 余额同步任务在队列中的存活时间（秒）
const jobTTL = 3600

// TallyFetcher Tally 余额拉取接口
type TallyFetcher interface {
	GetClosingBalance(ctx context.Context, ledgerName string) (float64, error)
}

// Config Agent 配置
type Config struct {
	Interval  time.Duration // 同步周期
	SyncQueue string        // 发布目标队列
}

// Agent Tally 余额同步 Agent
// 职责：
// 1. 周期性拉取全部零售商编码
// 2. 逐个向 Tally 查询期末余额
// 3. 把整批余额打包为任务发布到 lmstfy，由 apiserver 消费落库
type Agent struct {
	retailerRepo rpretailer.RetailerRepository
	fetcher      TallyFetcher
	lmstfyClient *lmstfy.Client
	cfg          Config
	log          logger.Logger

	closing atomic.Bool
}

// NewAgent 创建同步 Agent 实例
func NewAgent(
	retailerRepo rpretailer.RetailerRepository,
	fetcher TallyFetcher,
	lmstfyClient *lmstfy.Client,
	cfg Config,
	log logger.Logger,
) *Agent {
	return &Agent{
		retailerRepo: retailerRepo,
		fetcher:      fetcher,
		lmstfyClient: lmstfyClient,
		cfg:          cfg,
		log:          log,
	}
}

// Run 启动同步循环，先立即执行一轮，随 ctx 取消退出
func (a *Agent) Run(ctx context.Context) error {
	a.log.Infof(ctx, "tally sync agent started, interval=%s queue=%s", a.cfg.Interval, a.cfg.SyncQueue)

	if err := a.SyncOnce(ctx); err != nil {
		a.log.Errorf(ctx, "initial sync round failed: %v", err)
	}

	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.closing.Store(true)
			a.log.Infof(ctx, "tally sync agent stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := a.SyncOnce(ctx); err != nil {
				a.log.Errorf(ctx, "sync round failed: %v", err)
			}
		}
	}
}

// SyncOnce 执行一轮全量余额同步
func (a *Agent) SyncOnce(ctx context.Context) error {
	codes, err := a.retailerRepo.ListCodes(ctx)
	if err != nil {
		return fmt.Errorf("list retailer codes: %w", err)
	}
	if len(codes) == 0 {
		a.log.Infof(ctx, "no retailers to sync")
		return nil
	}

	now := time.Now()
	entries := make([]consumer.BalanceJobEntry, 0, len(codes))
	for _, code := range codes {
		if a.closing.Load() {
			return nil
		}

		balance, err := a.fetcher.GetClosingBalance(ctx, code)
		if err != nil {
			a.log.Warnf(ctx, "fetch balance for %s failed, skipped: %v", code, err)
			continue
		}
		entries = append(entries, consumer.BalanceJobEntry{
			RetailerCode:   code,
			ClosingBalance: balance,
			AsOf:           now,
		})
	}

	if len(entries) == 0 {
		a.log.Warnf(ctx, "sync round produced no balances, nothing published")
		return nil
	}

	job := consumer.BalanceSyncJob{
		RequestID: uuid.NewString(),
		Entries:   entries,
	}
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal sync job: %w", err)
	}

	if err := a.lmstfyClient.Publish(a.cfg.SyncQueue, data, jobTTL, 0); err != nil {
		return fmt.Errorf("publish sync job: %w", err)
	}

	a.log.Infof(ctx, "published sync job %s with %d of %d balances", job.RequestID, len(entries), len(codes))
	return nil
}
