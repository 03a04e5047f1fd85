package in

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookable-slots-generator/internal/core/domain"
)

type SlotGeneratorUseCase interface {
	// Генерация слотов для одного ресурса
	GenerateSlots(ctx context.Context, resourceID uuid.UUID, now time.Time) (domain.Slots, error)

	// Генерация слотов для нескольких ресурсов
	GenerateBatchSlots(ctx context.Context, resourceIDs []uuid.UUID, now time.Time) (map[uuid.UUID]domain.Slots, error)

	// Генерация слотов по данным из запроса, без обращения к платформе бронирования и кэшу
	PreviewSlots(ctx context.Context, now time.Time, data domain.AvailabilityData) (domain.Slots, error)

	// Сброс кэша слотов при изменении броней ресурса
	InvalidateResourceSlots(ctx context.Context, resourceID uuid.UUID)
	InvalidateAllSlots(ctx context.Context)
}
