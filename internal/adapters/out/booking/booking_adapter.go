package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bookable-slots-generator/internal/config"
	"bookable-slots-generator/internal/core/domain"
	"bookable-slots-generator/internal/core/ports/out"
)

// BookingAdapter ходит в платформу бронирования за данными о доступности.
// Сами брони и расписания хранятся там, этот сервис их только читает
type BookingAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

func NewBookingAdapter(cfg *config.Config, logger out.LoggerPort) *BookingAdapter {
	return &BookingAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.Booking.URL,
		username: cfg.Booking.Username,
		password: cfg.Booking.Password,
		logger:   logger,
	}
}

func (a *BookingAdapter) GetAvailabilityData(ctx context.Context, resourceID uuid.UUID) (*domain.AvailabilityData, error) {
	a.logger.Info("booking.availability.fetch", out.LogFields{
		"resourceId": resourceID,
	})

	url := fmt.Sprintf("%s/Resource/%s/$availability", a.baseURL, resourceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error("booking.availability.fetch_failed", out.LogFields{
			"resourceId": resourceID,
			"error":      err.Error(),
		})
		return nil, err
	}

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("booking.availability.fetch_failed", out.LogFields{
			"resourceId": resourceID,
			"error":      err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("booking.availability.fetch_failed", out.LogFields{
			"resourceId": resourceID,
			"status":     resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var data domain.AvailabilityData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		a.logger.Error("booking.availability.decode_failed", out.LogFields{
			"resourceId": resourceID,
			"error":      err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("booking.availability.fetch_success", out.LogFields{
		"resourceId":    resourceID,
		"windowsCount":  len(data.AvailabilityWindows),
		"bookingsCount": len(data.Bookings),
		"timezone":      data.Timezone,
	})

	return &data, nil
}
