package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Constants for Redis cache configuration
const (
	defaultScanBatchSize = 100
)

// RedisSnapshotCache implements SnapshotCache using Redis
type RedisSnapshotCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	config     SnapshotCacheConfig
	logger     *zap.Logger
}

// RedisSnapshotCacheOption is a functional option for configuring the cache
type RedisSnapshotCacheOption func(*RedisSnapshotCache)

// WithCacheConfig sets the cache configuration
func WithCacheConfig(config SnapshotCacheConfig) RedisSnapshotCacheOption {
	return func(c *RedisSnapshotCache) {
		c.config = config
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisSnapshotCacheOption {
	return func(c *RedisSnapshotCache) {
		c.logger = logger
	}
}

// NewRedisSnapshotCache creates a new Redis-based snapshot cache
func NewRedisSnapshotCache(cfg RedisConfig, opts ...RedisSnapshotCacheOption) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisSnapshotCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		config:     DefaultSnapshotCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisSnapshotCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisSnapshotCacheWithClient(client *redis.Client, opts ...RedisSnapshotCacheOption) *RedisSnapshotCache {
	cache := &RedisSnapshotCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		config:     DefaultSnapshotCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves a snapshot from cache
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for snapshot", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get snapshot from cache",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get snapshot from cache: %w", err)
	}

	c.logger.Debug("Cache hit for snapshot", zap.String("key", key))
	return data, nil
}

// Set stores a snapshot in cache
func (c *RedisSnapshotCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if len(data) == 0 {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.SnapshotTTL
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set snapshot in cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to set snapshot in cache: %w", err)
	}

	c.logger.Debug("Cached snapshot",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a snapshot from cache
func (c *RedisSnapshotCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to delete snapshot from cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to delete snapshot from cache: %w", err)
	}

	c.logger.Debug("Deleted snapshot from cache", zap.String("key", key))
	return nil
}

// InvalidateTenant removes every cached snapshot belonging to the tenant
func (c *RedisSnapshotCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	deleted, err := c.deleteByPattern(ctx, tenantKeyPattern(tenantID))
	if err != nil {
		return err
	}

	c.logger.Debug("Invalidated tenant snapshot cache",
		zap.String("tenant_id", tenantID.String()),
		zap.Int64("deleted_count", deleted))
	return nil
}

// InvalidateAll removes all cached snapshots
func (c *RedisSnapshotCache) InvalidateAll(ctx context.Context) error {
	deleted, err := c.deleteByPattern(ctx, "dashboard:*")
	if err != nil {
		return err
	}

	c.logger.Info("Invalidated all snapshot cache",
		zap.Int64("deleted_count", deleted))
	return nil
}

// deleteByPattern removes every key matching the pattern.
// Uses SCAN to avoid blocking Redis with the KEYS command.
func (c *RedisSnapshotCache) deleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan snapshot keys", zap.Error(err))
			return deletedCount, fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete snapshot keys", zap.Error(err))
				return deletedCount, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	return deletedCount, nil
}

// Close releases any resources held by the cache
func (c *RedisSnapshotCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisSnapshotCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisSnapshotCache implements SnapshotCache
var _ SnapshotCache = (*RedisSnapshotCache)(nil)
