package domain

import (
	"time"

	"bookable-slots-generator/internal/core/json_types"
)

// Формат ключа даты в результате генерации
const DateKeyFormat = "2006-01-02"

// TimeSlot - конкретный интервал с привязкой к таймзоне.
// Интервалы полуоткрытые: слоты, соприкасающиеся границами, не пересекаются
type TimeSlot struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Booking - уже занятый интервал, блокирует пересекающиеся слоты
type Booking struct {
	From json_types.DateTime `json:"from"`
	To   json_types.DateTime `json:"to"`
}

// Slots - результат генерации: дата (yyyy-MM-dd в таймзоне данных) ->
// слоты в хронологическом порядке. Ключ есть только если для даты
// нашелся хотя бы один свободный слот
type Slots map[string][]TimeSlot

// AvailabilityData - входные данные генератора. Генератор их не изменяет
// и ничего не сохраняет между вызовами
type AvailabilityData struct {
	CalendarLengthDays  int            `json:"calendarLengthDays"`
	AvailabilityWindows []Availability `json:"availabilityWindows"`
	DurationMinutes     int            `json:"durationMinutes"`
	MustBookHoursBefore float64        `json:"mustBookHoursBefore"`
	Bookings            []Booking      `json:"bookings"`
	Timezone            string         `json:"timezone"`
}
