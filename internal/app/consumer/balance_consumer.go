package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/infra/mq/lmstfy"
	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/logger"
	"github.com/ArpitBagaria/dist-backend/internal/app/services/svledger"
)

// BalanceSyncJob 同步 Agent 发布的余额同步任务
type BalanceSyncJob struct {
	RequestID string            `json:"request_id"`
	Entries   []BalanceJobEntry `json:"entries"`
}

// BalanceJobEntry 任务中的一条余额
type BalanceJobEntry struct {
	RetailerCode   string    `json:"retailer_code"`
	ClosingBalance float64   `json:"closing_balance"`
	AsOf           time.Time `json:"as_of"`
}

// Config 消费者配置
type Config struct {
	QueueName    string        // 队列名称
	Timeout      time.Duration // 拉取消息超时
	TTR          time.Duration // Time-To-Run
	PollInterval time.Duration // 出错后的退避间隔
}

// BalanceConsumer 余额同步消费者
// 职责：
// 1. 从 lmstfy 队列消费 Agent 发布的余额同步任务
// 2. 解析消息并调用 LedgerService 批量写入
// 3. 确认消息（ACK）
type BalanceConsumer struct {
	lmstfyClient  *lmstfy.Client
	ledgerService *svledger.LedgerService
	queueName     string
	timeout       time.Duration
	ttr           time.Duration
	pollInterval  time.Duration
	log           logger.Logger
}

// NewBalanceConsumer 创建余额同步消费者实例
func NewBalanceConsumer(
	lmstfyClient *lmstfy.Client,
	ledgerService *svledger.LedgerService,
	config *Config,
	log logger.Logger,
) *BalanceConsumer {
	return &BalanceConsumer{
		lmstfyClient:  lmstfyClient,
		ledgerService: ledgerService,
		queueName:     config.QueueName,
		timeout:       config.Timeout,
		ttr:           config.TTR,
		pollInterval:  config.PollInterval,
		log:           log,
	}
}

// Start 启动消费循环，随 ctx 取消退出
func (c *BalanceConsumer) Start(ctx context.Context) error {
	c.log.Infof(ctx, "balance consumer started, queue=%s timeout=%s ttr=%s", c.queueName, c.timeout, c.ttr)

	for {
		select {
		case <-ctx.Done():
			c.log.Infof(ctx, "balance consumer stopped")
			return ctx.Err()
		default:
			if err := c.consumeOne(ctx); err != nil {
				c.log.Errorf(ctx, "balance consumer: %v", err)
				time.Sleep(c.pollInterval)
			}
		}
	}
}

// consumeOne 消费一条消息
func (c *BalanceConsumer) consumeOne(ctx context.Context) error {
	msg, err := c.lmstfyClient.Consume(c.queueName, c.timeout, c.ttr)
	if err != nil {
		return fmt.Errorf("consume message failed: %w", err)
	}
	if msg == nil {
		// 队列为空，继续等待
		return nil
	}

	var job BalanceSyncJob
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		c.log.Errorf(ctx, "parse balance job %s failed: %v", msg.ID, err)
		// 解析失败直接 ACK，避免坏消息死循环
		_ = c.lmstfyClient.Ack(c.queueName, msg.ID)
		return err
	}

	entries := make([]svledger.BalanceEntry, 0, len(job.Entries))
	for _, e := range job.Entries {
		entries = append(entries, svledger.BalanceEntry{
			RetailerCode:   e.RetailerCode,
			ClosingBalance: e.ClosingBalance,
			AsOf:           e.AsOf,
		})
	}

	synced, err := c.ledgerService.ApplyBalances(ctx, entries)
	if err != nil {
		// 写入失败不 ACK，交给 lmstfy TTR 机制重试
		return fmt.Errorf("apply balances for job %s (request %s): %w", msg.ID, job.RequestID, err)
	}

	if err := c.lmstfyClient.Ack(c.queueName, msg.ID); err != nil {
		return fmt.Errorf("ack job %s: %w", msg.ID, err)
	}

	c.log.Infof(ctx, "balance job %s applied, request=%s synced=%d/%d", msg.ID, job.RequestID, synced, len(job.Entries))
	return nil
}
