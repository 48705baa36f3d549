package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SnapshotCache stores serialized dashboard snapshots keyed by scope.
// Implementations return (nil, nil) on a cache miss.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

// SnapshotCacheConfig holds TTL and Pub/Sub settings for the snapshot cache
type SnapshotCacheConfig struct {
	SnapshotTTL   time.Duration // L2 (Redis) TTL
	L1TTL         time.Duration // Local in-memory TTL
	PubSubChannel string
}

// DefaultSnapshotCacheConfig returns the default cache configuration
func DefaultSnapshotCacheConfig() SnapshotCacheConfig {
	return SnapshotCacheConfig{
		SnapshotTTL:   5 * time.Minute,
		L1TTL:         30 * time.Second,
		PubSubChannel: "stratix:dashboard:invalidate",
	}
}

// OverviewKey builds the cache key for a tenant's company-wide dashboard
func OverviewKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("dashboard:%s:overview", tenantID)
}

// AreaKey builds the cache key for a tenant's per-area dashboard
func AreaKey(tenantID, areaID uuid.UUID) string {
	return fmt.Sprintf("dashboard:%s:area:%s", tenantID, areaID)
}

// tenantKeyPattern matches every snapshot key belonging to the tenant
func tenantKeyPattern(tenantID uuid.UUID) string {
	return fmt.Sprintf("dashboard:%s:*", tenantID)
}

// CacheUpdateAction describes the kind of invalidation being broadcast
type CacheUpdateAction string

const (
	CacheUpdateActionKeyDeleted        CacheUpdateAction = "key_deleted"
	CacheUpdateActionTenantInvalidated CacheUpdateAction = "tenant_invalidated"
	CacheUpdateActionInvalidateAll     CacheUpdateAction = "invalidate_all"
)

// CacheUpdateMessage is broadcast over Redis Pub/Sub so every instance
// can drop its local L1 entries
type CacheUpdateMessage struct {
	Action    CacheUpdateAction `json:"action"`
	Key       string            `json:"key,omitempty"`
	TenantID  string            `json:"tenant_id,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// CacheStats reports hit/miss counters for monitoring
type CacheStats struct {
	L1Hits       int64   `json:"l1_hits"`
	L1Misses     int64   `json:"l1_misses"`
	L2Hits       int64   `json:"l2_hits"`
	L2Misses     int64   `json:"l2_misses"`
	TotalHits    int64   `json:"total_hits"`
	TotalMisses  int64   `json:"total_misses"`
	HitRatio     float64 `json:"hit_ratio"`
	CacheEntries int64   `json:"cache_entries"`
}
