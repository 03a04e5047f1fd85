package out

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookable-slots-generator/internal/core/domain"
)

type CachePort interface {
	// Кэширование сгенерированных слотов по ресурсу.
	// Результат зависит от now, поэтому запись считается валидной только в пределах TTL
	GetSlots(ctx context.Context, resourceID uuid.UUID, now time.Time) (domain.Slots, bool)
	StoreSlots(ctx context.Context, resourceID uuid.UUID, now time.Time, slots domain.Slots)
	InvalidateSlotsCache(ctx context.Context, resourceID uuid.UUID)
	InvalidateAllSlotsCache(ctx context.Context)
}
