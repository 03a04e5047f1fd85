package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookable-slots-generator/internal/adapters/out/logger"
	"bookable-slots-generator/internal/config"
	"bookable-slots-generator/internal/core/domain"
)

func newTestAdapter(t *testing.T) *CacheAdapter {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.SlotsSize = 10
	cfg.Cache.SlotsTtlSeconds = 60

	log, err := logger.NewConsoleLogger("Europe/Helsinki")
	require.NoError(t, err)

	adapter, err := NewCacheAdapter(cfg, log)
	require.NoError(t, err)
	require.NotNil(t, adapter)

	return adapter
}

func testSlots(now time.Time) domain.Slots {
	return domain.Slots{
		now.Format(domain.DateKeyFormat): {
			{From: now, To: now.Add(time.Hour)},
		},
	}
}

func TestNewCacheAdapter_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	log, err := logger.NewConsoleLogger("Europe/Helsinki")
	require.NoError(t, err)

	adapter, err := NewCacheAdapter(cfg, log)
	require.NoError(t, err)
	assert.Nil(t, adapter)
}

func TestCacheAdapter_StoreAndGet(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	resourceID := uuid.New()
	now := time.Date(2024, 12, 18, 10, 0, 0, 0, time.UTC)
	slots := testSlots(now)

	adapter.StoreSlots(ctx, resourceID, now, slots)

	cached, exists := adapter.GetSlots(ctx, resourceID, now.Add(30*time.Second))
	require.True(t, exists)
	assert.Equal(t, slots, cached)
}

func TestCacheAdapter_MissForUnknownResource(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	_, exists := adapter.GetSlots(ctx, uuid.New(), time.Now())
	assert.False(t, exists)
}

func TestCacheAdapter_StaleAfterTtl(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	resourceID := uuid.New()
	now := time.Date(2024, 12, 18, 10, 0, 0, 0, time.UTC)
	adapter.StoreSlots(ctx, resourceID, now, testSlots(now))

	// Запись старше TTL отбрасывается
	_, exists := adapter.GetSlots(ctx, resourceID, now.Add(61*time.Second))
	assert.False(t, exists)

	// Запрос "из прошлого" относительно момента генерации тоже не обслуживается
	_, exists = adapter.GetSlots(ctx, resourceID, now.Add(-time.Second))
	assert.False(t, exists)
}

func TestCacheAdapter_Invalidate(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	resourceID := uuid.New()
	now := time.Date(2024, 12, 18, 10, 0, 0, 0, time.UTC)
	adapter.StoreSlots(ctx, resourceID, now, testSlots(now))

	adapter.InvalidateSlotsCache(ctx, resourceID)

	_, exists := adapter.GetSlots(ctx, resourceID, now)
	assert.False(t, exists)
}

func TestCacheAdapter_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	now := time.Date(2024, 12, 18, 10, 0, 0, 0, time.UTC)
	first := uuid.New()
	second := uuid.New()
	adapter.StoreSlots(ctx, first, now, testSlots(now))
	adapter.StoreSlots(ctx, second, now, testSlots(now))

	adapter.InvalidateAllSlotsCache(ctx)

	_, exists := adapter.GetSlots(ctx, first, now)
	assert.False(t, exists)
	_, exists = adapter.GetSlots(ctx, second, now)
	assert.False(t, exists)
}
