package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache - общий для всех инстансов кэш поверх Redis.
// Ошибки Redis не пробрасываются: промах кэша всегда безопасен.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(logger *slog.Logger, client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "redis_cache")),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		cacheMisses.WithLabelValues(backendRedis).Inc()
		return nil, false
	}
	if err != nil {
		c.fail(ctx, "get", key, err)
		cacheMisses.WithLabelValues(backendRedis).Inc()
		return nil, false
	}
	cacheHits.WithLabelValues(backendRedis).Inc()
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		c.fail(ctx, "set", key, err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.fail(ctx, "delete", key, err)
	}
}

// Start проверяет доступность Redis при старте приложения.
func (c *RedisCache) Start(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

func (c *RedisCache) fail(ctx context.Context, op, key string, err error) {
	cacheErrors.WithLabelValues(backendRedis, op).Inc()
	c.logger.WarnContext(ctx, "redis cache "+op+" failed", slog.String("key", key), slog.Any("error", err))
}
