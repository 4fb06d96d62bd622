package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hackadmin/pkg/redis"
)

// CacheService provides cache-aside reads over Redis. A nil redis client
// turns every call into a pass-through.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// Enabled reports whether a Redis backend is attached
func (c *CacheService) Enabled() bool {
	return c != nil && c.redis != nil
}

// Keys returns the key builder, or nil when caching is disabled
func (c *CacheService) Keys() *redis.KeyBuilder {
	if !c.Enabled() {
		return nil
	}
	return c.redis.KeyBuilder
}

// cached reads key, falling back to load on miss, corruption or cache error.
// Only successful loads are written back.
func cached[T any](ctx context.Context, c *CacheService, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	if !c.Enabled() || key == "" {
		return load(ctx)
	}

	var hit T
	err := c.redis.GetJSON(ctx, key, &hit)
	switch {
	case err == nil:
		c.logger.Debug("Cache hit", zap.String("key", key))
		return hit, nil
	case errors.Is(err, redis.ErrMiss):
		c.logger.Debug("Cache miss", zap.String("key", key))
	default:
		c.logger.Warn("Cache read failed, falling back to backend", zap.String("key", key), zap.Error(err))
	}

	val, err := load(ctx)
	if err != nil {
		return val, err
	}

	setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := c.redis.SetJSON(setCtx, key, val, ttl); err != nil {
		c.logger.Warn("Failed to populate cache", zap.String("key", key), zap.Error(err))
	}
	return val, nil
}

// Invalidate removes keys; failures are logged, never returned
func (c *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.redis.Delete(ctx, keys...); err != nil {
		c.logger.Error("Failed to invalidate cache keys", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidatePattern removes every key matching pattern
func (c *CacheService) InvalidatePattern(ctx context.Context, pattern string) {
	if !c.Enabled() {
		return
	}
	if _, err := c.redis.InvalidatePattern(ctx, pattern); err != nil {
		c.logger.Error("Failed to invalidate cache pattern", zap.String("pattern", pattern), zap.Error(err))
	}
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}
