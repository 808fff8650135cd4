package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shop/config"
	"shop/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PageCache caches serialized read-model pages in Redis.
//
// Only DTO pages go in here, never entities: a projection is a closed value
// that stays correct when serialized, while a cached entity graph would pin
// stale associations and stock counts. Misses and transport errors both fall
// through to the database.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache connects to Redis and verifies the connection.
func NewPageCache(cfg *config.CacheConfig) (*PageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	return &PageCache{client: client, ttl: cfg.TTL}, nil
}

// PageKey builds the cache key for one page of a named view.
func PageKey(view string, offset, limit int) string {
	return fmt.Sprintf("shop:orders:%s:%d:%d", view, offset, limit)
}

// Get loads a cached page into dest. Returns false on miss; transport errors
// are logged and reported as a miss so reads never fail on the cache.
func (c *PageCache) Get(ctx context.Context, key string, dest interface{}) bool {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		logger.Warn("cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a page with the configured TTL. Failures are logged, not returned.
func (c *PageCache) Set(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateOrders drops every cached order page. Called after writes that
// change the order graph.
func (c *PageCache) InvalidateOrders(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "shop:orders:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("cache scan failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			logger.Warn("cache invalidate failed", zap.Error(err))
		}
	}
}

// Close releases the client connection pool.
func (c *PageCache) Close() error {
	return c.client.Close()
}
