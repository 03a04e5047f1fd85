package out

import (
	"context"

	"github.com/google/uuid"

	"bookable-slots-generator/internal/core/domain"
)

type BookingPort interface {
	// Недельная доступность, настройки и текущие брони ресурса
	GetAvailabilityData(ctx context.Context, resourceID uuid.UUID) (*domain.AvailabilityData, error)
}
