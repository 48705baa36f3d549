package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TieredSnapshotCache implements a two-tier caching strategy
// L1: Local in-memory cache (fast, but local to instance)
// L2: Redis cache (slower, but shared across instances)
// This follows a read-through, write-around pattern with Pub/Sub invalidation
type TieredSnapshotCache struct {
	l1Cache     *InMemorySnapshotCache
	l2Cache     *RedisSnapshotCache
	invalidator *RedisSnapshotInvalidator
	config      SnapshotCacheConfig
	logger      *zap.Logger

	// Stats for monitoring
	l1Hits   int64
	l1Misses int64
	l2Hits   int64
	l2Misses int64
}

// TieredSnapshotCacheOption is a functional option for configuring the cache
type TieredSnapshotCacheOption func(*TieredSnapshotCache)

// WithTieredConfig sets the cache configuration
func WithTieredConfig(config SnapshotCacheConfig) TieredSnapshotCacheOption {
	return func(c *TieredSnapshotCache) {
		c.config = config
	}
}

// WithTieredLogger sets the logger for the cache
func WithTieredLogger(logger *zap.Logger) TieredSnapshotCacheOption {
	return func(c *TieredSnapshotCache) {
		c.logger = logger
	}
}

// NewTieredSnapshotCache creates a new tiered snapshot cache
func NewTieredSnapshotCache(
	l1Cache *InMemorySnapshotCache,
	l2Cache *RedisSnapshotCache,
	invalidator *RedisSnapshotInvalidator,
	opts ...TieredSnapshotCacheOption,
) *TieredSnapshotCache {
	cache := &TieredSnapshotCache{
		l1Cache:     l1Cache,
		l2Cache:     l2Cache,
		invalidator: invalidator,
		config:      DefaultSnapshotCacheConfig(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// StartInvalidationSubscription starts listening for cache invalidation messages
// This should be called after creating the cache, typically in a goroutine
func (c *TieredSnapshotCache) StartInvalidationSubscription(ctx context.Context) error {
	if c.invalidator == nil {
		return nil
	}

	return c.invalidator.Subscribe(ctx, func(msg CacheUpdateMessage) {
		c.handleInvalidationMessage(msg)
	})
}

// handleInvalidationMessage processes cache invalidation messages
func (c *TieredSnapshotCache) handleInvalidationMessage(msg CacheUpdateMessage) {
	ctx := context.Background()

	switch msg.Action {
	case CacheUpdateActionKeyDeleted:
		if err := c.l1Cache.Delete(ctx, msg.Key); err != nil {
			c.logger.Error("Failed to invalidate L1 cache for key",
				zap.String("key", msg.Key),
				zap.Error(err))
		}
		c.logger.Debug("Invalidated L1 cache for key",
			zap.String("key", msg.Key))

	case CacheUpdateActionTenantInvalidated:
		tenantID, err := uuid.Parse(msg.TenantID)
		if err != nil {
			c.logger.Error("Failed to parse tenant ID in invalidation message",
				zap.String("tenant_id", msg.TenantID),
				zap.Error(err))
			return
		}
		if err := c.l1Cache.InvalidateTenant(ctx, tenantID); err != nil {
			c.logger.Error("Failed to invalidate L1 cache for tenant",
				zap.String("tenant_id", msg.TenantID),
				zap.Error(err))
		}
		c.logger.Debug("Invalidated L1 cache for tenant",
			zap.String("tenant_id", msg.TenantID))

	case CacheUpdateActionInvalidateAll:
		if err := c.l1Cache.InvalidateAll(ctx); err != nil {
			c.logger.Error("Failed to invalidate all L1 cache", zap.Error(err))
		}
		c.logger.Info("Invalidated all L1 cache")
	}
}

// Get retrieves a snapshot from cache (L1 -> L2)
func (c *TieredSnapshotCache) Get(ctx context.Context, key string) ([]byte, error) {
	// Try L1 first
	data, err := c.l1Cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("L1 cache error", zap.String("key", key), zap.Error(err))
	}
	if data != nil {
		atomic.AddInt64(&c.l1Hits, 1)
		return data, nil
	}
	atomic.AddInt64(&c.l1Misses, 1)

	// Try L2
	data, err = c.l2Cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data != nil {
		atomic.AddInt64(&c.l2Hits, 1)
		// Populate L1 cache
		if err := c.l1Cache.Set(ctx, key, data, c.config.L1TTL); err != nil {
			c.logger.Warn("Failed to populate L1 cache", zap.String("key", key), zap.Error(err))
		}
		return data, nil
	}
	atomic.AddInt64(&c.l2Misses, 1)

	return nil, nil
}

// Set stores a snapshot in both tiers
func (c *TieredSnapshotCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	// Set in L2
	if err := c.l2Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}

	// Also set in L1 for immediate local access
	if err := c.l1Cache.Set(ctx, key, data, c.config.L1TTL); err != nil {
		c.logger.Warn("Failed to set L1 cache", zap.String("key", key), zap.Error(err))
	}

	return nil
}

// Delete removes a snapshot from cache (both L1 and L2)
func (c *TieredSnapshotCache) Delete(ctx context.Context, key string) error {
	// Delete from L2
	if err := c.l2Cache.Delete(ctx, key); err != nil {
		return err
	}

	// Delete from L1
	if err := c.l1Cache.Delete(ctx, key); err != nil {
		c.logger.Warn("Failed to delete from L1 cache", zap.String("key", key), zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishKeyDelete(ctx, key); err != nil {
			c.logger.Warn("Failed to publish key delete", zap.String("key", key), zap.Error(err))
		}
	}

	return nil
}

// InvalidateTenant removes every cached snapshot belonging to the tenant
func (c *TieredSnapshotCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	// Invalidate L2
	if err := c.l2Cache.InvalidateTenant(ctx, tenantID); err != nil {
		return err
	}

	// Invalidate L1
	if err := c.l1Cache.InvalidateTenant(ctx, tenantID); err != nil {
		c.logger.Warn("Failed to invalidate L1 cache for tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishTenantInvalidation(ctx, tenantID); err != nil {
			c.logger.Warn("Failed to publish tenant invalidation",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err))
		}
	}

	return nil
}

// InvalidateAll removes all cached snapshots
func (c *TieredSnapshotCache) InvalidateAll(ctx context.Context) error {
	// Invalidate L2
	if err := c.l2Cache.InvalidateAll(ctx); err != nil {
		return err
	}

	// Invalidate L1
	if err := c.l1Cache.InvalidateAll(ctx); err != nil {
		c.logger.Warn("Failed to invalidate L1 cache", zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishInvalidateAll(ctx); err != nil {
			c.logger.Warn("Failed to publish invalidate all", zap.Error(err))
		}
	}

	return nil
}

// Close releases any resources held by the cache
func (c *TieredSnapshotCache) Close() error {
	var lastErr error

	if c.invalidator != nil {
		if err := c.invalidator.Close(); err != nil {
			lastErr = err
		}
	}

	if err := c.l2Cache.Close(); err != nil {
		lastErr = err
	}

	if err := c.l1Cache.Close(); err != nil {
		lastErr = err
	}

	return lastErr
}

// GetCacheStats returns statistics about cache hits, misses, and other metrics
func (c *TieredSnapshotCache) GetCacheStats() CacheStats {
	l1Hits := atomic.LoadInt64(&c.l1Hits)
	l1Misses := atomic.LoadInt64(&c.l1Misses)
	l2Hits := atomic.LoadInt64(&c.l2Hits)
	l2Misses := atomic.LoadInt64(&c.l2Misses)

	totalHits := l1Hits + l2Hits
	totalMisses := l2Misses // Only count final misses

	var hitRatio float64
	totalRequests := totalHits + totalMisses
	if totalRequests > 0 {
		hitRatio = float64(totalHits) / float64(totalRequests)
	}

	return CacheStats{
		L1Hits:       l1Hits,
		L1Misses:     l1Misses,
		L2Hits:       l2Hits,
		L2Misses:     l2Misses,
		TotalHits:    totalHits,
		TotalMisses:  totalMisses,
		HitRatio:     hitRatio,
		CacheEntries: int64(c.l1Cache.Count()),
	}
}

// ResetStats resets the cache statistics
func (c *TieredSnapshotCache) ResetStats() {
	atomic.StoreInt64(&c.l1Hits, 0)
	atomic.StoreInt64(&c.l1Misses, 0)
	atomic.StoreInt64(&c.l2Hits, 0)
	atomic.StoreInt64(&c.l2Misses, 0)
	c.l1Cache.ResetStats()
}

// Ensure TieredSnapshotCache implements SnapshotCache
var _ SnapshotCache = (*TieredSnapshotCache)(nil)
