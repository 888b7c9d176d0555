// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"sales-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client shared by the plan cache and the alias
// store.
type RedisClient struct {
	Client *redis.Client
}

// AliasesKey is the hash holding a shop's learned aliases, one field per
// alias with a JSON array of terms as value.
func AliasesKey(shopID string) string {
	return "aliases:" + shopID
}

// PlanKey caches a shop's plan name.
func PlanKey(shopID string) string {
	return "plan:" + shopID
}

func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     poolSize,
	})

	return &RedisClient{Client: rdb}, nil
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// ForgetShop drops every cached entry for a shop.
func (c *RedisClient) ForgetShop(ctx context.Context, shopID string) error {
	if err := c.Client.Del(ctx, AliasesKey(shopID), PlanKey(shopID)).Err(); err != nil {
		return fmt.Errorf("forget shop %s: %w", shopID, err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
