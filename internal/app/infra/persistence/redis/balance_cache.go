package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ArpitBagaria/dist-backend/internal/app/pkg/errorx"
)

const balanceKeyPrefix = "tally:balance:"

// BalanceCache Tally 余额的 Redis 缓存层
type BalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBalanceCache 创建余额缓存实例并校验连通性
func NewBalanceCache(addr, password string, db int, ttl time.Duration) (*BalanceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &BalanceCache{client: client, ttl: ttl}, nil
}

// Get 读取某零售商的余额，未命中时返回 ErrCacheMiss
func (c *BalanceCache) Get(ctx context.Context, retailerCode string) (float64, error) {
	val, err := c.client.Get(ctx, balanceKeyPrefix+retailerCode).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, errorx.ErrCacheMiss
		}
		return 0, err
	}

	balance, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cached balance for %s: %w", retailerCode, err)
	}
	return balance, nil
}

// Set 写入某零售商的余额（带 TTL）
func (c *BalanceCache) Set(ctx context.Context, retailerCode string, balance float64) error {
	val := strconv.FormatFloat(balance, 'f', -1, 64)
	return c.client.Set(ctx, balanceKeyPrefix+retailerCode, val, c.ttl).Err()
}

// Close 关闭 Redis 连接
func (c *BalanceCache) Close() error {
	return c.client.Close()
}
