package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookable-slots-generator/internal/config"
	"bookable-slots-generator/internal/core/domain"
	"bookable-slots-generator/internal/core/ports/out"
)

type SlotGeneratorService struct {
	bookingPort out.BookingPort
	cachePort   out.CachePort
	logger      out.LoggerPort
	cfg         *config.Config
}

func NewSlotGeneratorService(
	bookingPort out.BookingPort,
	cachePort out.CachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *SlotGeneratorService {
	return &SlotGeneratorService{
		bookingPort: bookingPort,
		cachePort:   cachePort,
		cfg:         cfg,
		logger:      logger.WithModule("SlotGeneratorService"),
	}
}

func (s *SlotGeneratorService) GenerateSlots(ctx context.Context, resourceID uuid.UUID, now time.Time) (domain.Slots, error) {
	s.logger.Info("slots.generate.started", out.LogFields{
		"resourceId": resourceID,
	})

	// Проверяем кэш только если он включен
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if slots, exists := s.cachePort.GetSlots(ctx, resourceID, now); exists {
			s.logger.Debug("slots.generate.cache.hit", out.LogFields{
				"resourceId": resourceID,
				"daysCount":  len(slots),
			})
			return slots, nil
		}
	}

	s.logger.Debug("slots.generate.cache.miss", out.LogFields{
		"resourceId": resourceID,
	})

	data, err := s.bookingPort.GetAvailabilityData(ctx, resourceID)
	if err != nil {
		s.logger.Error("slots.generate.availability.fetch_failed", out.LogFields{
			"resourceId": resourceID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("slots.generate.availability.fetch_failed: %w", err)
	}

	slots, err := GenerateSlots(now, *data)
	if err != nil {
		s.logger.Error("slots.generate.failed", out.LogFields{
			"resourceId": resourceID,
			"error":      err.Error(),
		})
		return nil, err
	}

	slots = prepareResponseSlots(slots)

	// Сохраняем в кэш только если он включен
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreSlots(ctx, resourceID, now, slots)
	}

	s.logger.Info("slots.generate.finished", out.LogFields{
		"resourceId": resourceID,
		"daysCount":  len(slots),
	})

	return slots, nil
}

func (s *SlotGeneratorService) GenerateBatchSlots(ctx context.Context, resourceIDs []uuid.UUID, now time.Time) (map[uuid.UUID]domain.Slots, error) {
	result := make(map[uuid.UUID]domain.Slots)

	for _, resourceID := range resourceIDs {
		slots, err := s.GenerateSlots(ctx, resourceID, now)
		if err != nil {
			return nil, err
		}
		result[resourceID] = slots
	}

	return result, nil
}

func (s *SlotGeneratorService) PreviewSlots(ctx context.Context, now time.Time, data domain.AvailabilityData) (domain.Slots, error) {
	s.logger.Debug("slots.preview.started", out.LogFields{
		"calendarLengthDays": data.CalendarLengthDays,
		"windowsCount":       len(data.AvailabilityWindows),
		"timezone":           data.Timezone,
	})

	slots, err := GenerateSlots(now, data)
	if err != nil {
		s.logger.Error("slots.preview.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return prepareResponseSlots(slots), nil
}

func (s *SlotGeneratorService) InvalidateResourceSlots(ctx context.Context, resourceID uuid.UUID) {
	if s.cachePort == nil || !s.cfg.Cache.Enabled {
		return
	}

	s.logger.Debug("slots.cache.invalidate", out.LogFields{
		"resourceId": resourceID,
	})
	s.cachePort.InvalidateSlotsCache(ctx, resourceID)
}

func (s *SlotGeneratorService) InvalidateAllSlots(ctx context.Context) {
	if s.cachePort == nil || !s.cfg.Cache.Enabled {
		return
	}

	s.logger.Debug("slots.cache.invalidate_all", out.LogFields{})
	s.cachePort.InvalidateAllSlotsCache(ctx)
}

// Сортировка - страховка: ядро и так отдает слоты в хронологическом порядке
func prepareResponseSlots(slots domain.Slots) domain.Slots {
	for dateKey, daySlots := range slots {
		slots[dateKey] = SlotSlice(daySlots).quickSort()
	}
	return slots
}
