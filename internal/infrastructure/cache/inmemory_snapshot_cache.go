package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
)

// InMemorySnapshotCache implements SnapshotCache using in-memory storage
// This is designed to be used as L1 cache in front of Redis
type InMemorySnapshotCache struct {
	entries sync.Map // map[string]*snapshotEntry
	config  SnapshotCacheConfig
	logger  *zap.Logger
	stopCh  chan struct{} // Channel to stop the cleanup goroutine
	stopped int32         // Atomic flag to track if cache is stopped

	// Stats for monitoring
	hits   int64
	misses int64
}

// snapshotEntry wraps a cached payload with expiration time
type snapshotEntry struct {
	data      []byte
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *snapshotEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemorySnapshotCacheOption is a functional option for configuring the cache
type InMemorySnapshotCacheOption func(*InMemorySnapshotCache)

// WithInMemoryConfig sets the cache configuration
func WithInMemoryConfig(config SnapshotCacheConfig) InMemorySnapshotCacheOption {
	return func(c *InMemorySnapshotCache) {
		c.config = config
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemorySnapshotCacheOption {
	return func(c *InMemorySnapshotCache) {
		c.logger = logger
	}
}

// NewInMemorySnapshotCache creates a new in-memory snapshot cache
func NewInMemorySnapshotCache(opts ...InMemorySnapshotCacheOption) *InMemorySnapshotCache {
	cache := &InMemorySnapshotCache{
		config: DefaultSnapshotCacheConfig(),
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a snapshot from cache
func (c *InMemorySnapshotCache) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*snapshotEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("L1 cache hit for snapshot", zap.String("key", key))
			return entry.data, nil
		}
		// Expired, remove from cache
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("L1 cache miss for snapshot", zap.String("key", key))
	return nil, nil
}

// Set stores a snapshot in cache
func (c *InMemorySnapshotCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if len(data) == 0 {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.L1TTL
	}

	entry := &snapshotEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}

	c.entries.Store(key, entry)
	c.logger.Debug("Cached snapshot in L1",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a snapshot from cache
func (c *InMemorySnapshotCache) Delete(ctx context.Context, key string) error {
	c.entries.Delete(key)
	c.logger.Debug("Deleted snapshot from L1 cache", zap.String("key", key))
	return nil
}

// InvalidateTenant removes every cached snapshot belonging to the tenant
func (c *InMemorySnapshotCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	prefix := "dashboard:" + tenantID.String() + ":"
	var removed int

	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})

	c.logger.Debug("Invalidated tenant L1 snapshot cache",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("removed", removed))
	return nil
}

// InvalidateAll removes all cached snapshots
func (c *InMemorySnapshotCache) InvalidateAll(ctx context.Context) error {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})

	c.logger.Info("Invalidated all L1 snapshot cache")
	return nil
}

// Close releases any resources held by the cache
func (c *InMemorySnapshotCache) Close() error {
	// Only close once
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemorySnapshotCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// ResetStats resets the cache statistics
func (c *InMemorySnapshotCache) ResetStats() {
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Count returns the number of entries in the cache
func (c *InMemorySnapshotCache) Count() int {
	var count int
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemorySnapshotCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup",
							zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemorySnapshotCache) doCleanup() {
	var removed int

	c.entries.Range(func(key, value any) bool {
		entry := value.(*snapshotEntry)
		if entry.isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Cleaned up expired L1 cache entries",
			zap.Int("removed", removed))
	}
}

// Ensure InMemorySnapshotCache implements SnapshotCache
var _ SnapshotCache = (*InMemorySnapshotCache)(nil)
