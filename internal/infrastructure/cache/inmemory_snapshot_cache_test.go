package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySnapshotCache_SetAndGet(t *testing.T) {
	cache := NewInMemorySnapshotCache()
	defer cache.Close()

	ctx := context.Background()
	tenantID := uuid.New()
	key := OverviewKey(tenantID)
	payload := []byte(`{"total_initiatives":12}`)

	err := cache.Set(ctx, key, payload, time.Minute)
	require.NoError(t, err)

	data, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestInMemorySnapshotCache_GetMiss(t *testing.T) {
	cache := NewInMemorySnapshotCache()
	defer cache.Close()

	data, err := cache.Get(context.Background(), OverviewKey(uuid.New()))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestInMemorySnapshotCache_SetEmptyPayloadIsNoop(t *testing.T) {
	cache := NewInMemorySnapshotCache()
	defer cache.Close()

	ctx := context.Background()
	key := OverviewKey(uuid.New())

	err := cache.Set(ctx, key, nil, time.Minute)
	require.NoError(t, err)

	data, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestInMemorySnapshotCache_Expiration(t *testing.T) {
	cache := NewInMemorySnapshotCache()
	defer cache.Close()

	ctx := context.Background()
	key := OverviewKey(uuid.New())

	err := cache.Set(ctx, key, []byte("data"), 10*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	data, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestInMemorySnapshotCache_Delete(t *testing.T) {
	cache := NewInMemorySnapshotCache()
	defer cache.Close()

	ctx := context.Background()
	key := OverviewKey(uuid.New())

	require.NoError(t, cache.Set(ctx, key, []byte("data"), time.Minute))
	require.NoError(t, cache.Delete(ctx, key))

	data, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestInMemorySnapshotCache_InvalidateTenant(t *testing.T) {
	cache := NewInMemorySnapshotCache()
	defer cache.Close()

	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()
	areaID := uuid.New()

	require.NoError(t, cache.Set(ctx, OverviewKey(tenantA), []byte("a-overview"), time.Minute))
	require.NoError(t, cache.Set(ctx, AreaKey(tenantA, areaID), []byte("a-area"), time.Minute))
	require.NoError(t, cache.Set(ctx, OverviewKey(tenantB), []byte("b-overview"), time.Minute))

	require.NoError(t, cache.InvalidateTenant(ctx, tenantA))

	data, err := cache.Get(ctx, OverviewKey(tenantA))
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = cache.Get(ctx, AreaKey(tenantA, areaID))
	require.NoError(t, err)
	assert.Nil(t, data)

	// Other tenants are untouched
	data, err = cache.Get(ctx, OverviewKey(tenantB))
	require.NoError(t, err)
	assert.Equal(t, []byte("b-overview"), data)
}

func TestInMemorySnapshotCache_InvalidateAll(t *testing.T) {
	cache := NewInMemorySnapshotCache()
	defer cache.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, cache.Set(ctx, OverviewKey(uuid.New()), []byte("data"), time.Minute))
	}
	assert.Equal(t, 5, cache.Count())

	require.NoError(t, cache.InvalidateAll(ctx))
	assert.Equal(t, 0, cache.Count())
}

func TestInMemorySnapshotCache_Stats(t *testing.T) {
	cache := NewInMemorySnapshotCache()
	defer cache.Close()

	ctx := context.Background()
	key := OverviewKey(uuid.New())

	require.NoError(t, cache.Set(ctx, key, []byte("data"), time.Minute))

	_, _ = cache.Get(ctx, key)                     // hit
	_, _ = cache.Get(ctx, OverviewKey(uuid.New())) // miss

	hits, misses := cache.GetStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	cache.ResetStats()
	hits, misses = cache.GetStats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(0), misses)
}

func TestInMemorySnapshotCache_CloseIsIdempotent(t *testing.T) {
	cache := NewInMemorySnapshotCache()

	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())
}
