package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"bookable-slots-generator/internal/config"
	"bookable-slots-generator/internal/core/domain"
	"bookable-slots-generator/internal/core/ports/out"
)

type slotsCacheEntry struct {
	Slots       domain.Slots
	GeneratedAt time.Time
}

type CacheAdapter struct {
	cache  *lru.Cache[uuid.UUID, *slotsCacheEntry]
	ttl    time.Duration
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[uuid.UUID, *slotsCacheEntry](cfg.Cache.SlotsSize)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SlotsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  lruCache,
		ttl:    time.Duration(cfg.Cache.SlotsTtlSeconds) * time.Second,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetSlots(ctx context.Context, resourceID uuid.UUID, now time.Time) (domain.Slots, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(resourceID)
	if !exists {
		c.logger.Debug("cache.slots.get.miss", out.LogFields{
			"resourceId": resourceID,
		})
		return nil, false
	}

	// Слоты зависят от момента генерации, запись старше TTL не годится
	if now.Before(entry.GeneratedAt) || now.Sub(entry.GeneratedAt) > c.ttl {
		c.logger.Debug("cache.slots.get.stale", out.LogFields{
			"resourceId":  resourceID,
			"generatedAt": entry.GeneratedAt,
			"requestedAt": now,
		})
		return nil, false
	}

	c.logger.Debug("cache.slots.get.hit", out.LogFields{
		"resourceId": resourceID,
		"daysCount":  len(entry.Slots),
	})
	return entry.Slots, true
}

func (c *CacheAdapter) StoreSlots(ctx context.Context, resourceID uuid.UUID, now time.Time, slots domain.Slots) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.slots.store", out.LogFields{
		"resourceId": resourceID,
		"daysCount":  len(slots),
	})

	c.cache.Add(resourceID, &slotsCacheEntry{
		Slots:       slots,
		GeneratedAt: now,
	})
}

func (c *CacheAdapter) InvalidateSlotsCache(ctx context.Context, resourceID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(resourceID)
}

func (c *CacheAdapter) InvalidateAllSlotsCache(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}
