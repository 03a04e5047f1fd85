package services

import (
	"time"

	"bookable-slots-generator/internal/core/domain"
	"bookable-slots-generator/internal/utils"
)

// GenerateSlots - чистая функция генерации: (now, AvailabilityData) -> Slots.
// Никакого состояния между вызовами, все входные данные только читаются.
// Единственная ошибка - InvalidWeekdayError при дне недели вне 1..7,
// она прерывает весь вызов без частичного результата
func GenerateSlots(now time.Time, data domain.AvailabilityData) (domain.Slots, error) {
	result := make(domain.Slots)

	// Нулевая или отрицательная длительность не дает ни одного слота
	if data.DurationMinutes <= 0 {
		return result, nil
	}

	location, err := time.LoadLocation(data.Timezone)
	if err != nil {
		// Невалидную таймзону ядро не валидирует, работаем в UTC
		location = time.UTC
	}

	startDate := now.In(location)

	// Все брони переводим в таймзону данных,
	// чтобы дальше все сравнения шли в одном календаре
	bookings := make([]domain.TimeSlot, 0, len(data.Bookings))
	for _, booking := range data.Bookings {
		bookings = append(bookings, domain.TimeSlot{
			From: booking.From.Date.In(location),
			To:   booking.To.Date.In(location),
		})
	}

	for dayOffset := 0; dayOffset < data.CalendarLengthDays; dayOffset++ {
		currentDay := startDate.AddDate(0, 0, dayOffset)

		daySlots, err := generateDaySlots(currentDay, data, bookings, startDate)
		if err != nil {
			return nil, err
		}

		// Слот, переваливающий за полночь, целиком попадает под дату своего начала
		for _, slot := range daySlots {
			dateKey := slot.From.Format(domain.DateKeyFormat)
			result[dateKey] = append(result[dateKey], slot)
		}
	}

	return result, nil
}

// generateDaySlots перебирает окна доступности, привязанные к дню недели
// currentDay, и возвращает свободные слоты этого дня
func generateDaySlots(currentDay time.Time, data domain.AvailabilityData, bookings []domain.TimeSlot, now time.Time) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0)
	slotDuration := time.Duration(data.DurationMinutes) * time.Minute

	for _, availability := range data.AvailabilityWindows {
		// Окно привязывается только к дню недели своего начала,
		// окна через полночь обрабатываются продлением конца
		if availability.From.Weekday != utils.ISOWeekday(currentDay) {
			continue
		}

		windowStart, windowEnd, err := resolveWindow(currentDay, availability, data.CalendarLengthDays, now)
		if err != nil {
			return nil, err
		}

		// После зажатия окно может вообще не пересекаться с текущим днем
		if utils.EndOfDay(currentDay).Before(windowStart) || utils.StartOfDay(currentDay).After(windowEnd) {
			continue
		}

		// Слоты идут стык в стык от начала окна, хвост короче слота отбрасывается
		for slotStart := windowStart; !slotStart.Add(slotDuration).After(windowEnd); slotStart = slotStart.Add(slotDuration) {
			slot := domain.TimeSlot{From: slotStart, To: slotStart.Add(slotDuration)}

			if utils.IsSlotBlocked(slot, bookings) {
				continue
			}

			// Порог минимального уведомления включительный:
			// слот ровно на границе еще проходит
			if slot.From.Sub(now).Hours() < data.MustBookHoursBefore {
				continue
			}

			slots = append(slots, slot)
		}
	}

	return slots, nil
}

// resolveWindow возвращает границы окна доступности для конкретного дня.
// Ночные окна продлеваются на сутки, после чего границы зажимаются
// в пределы [начало дня now, конец календарного горизонта]
func resolveWindow(currentDay time.Time, availability domain.Availability, calendarLengthDays int, now time.Time) (time.Time, time.Time, error) {
	windowStart, err := utils.DateTimeFromWeek(currentDay, availability.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	windowEnd, err := utils.DateTimeFromWeek(currentDay, availability.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	// Окно через полночь: номинальный конец раньше начала, продлеваем конец на сутки.
	// Окно с концом ровно в 00:00 заканчивается в полночь следующего дня,
	// а не превращается в пустое
	if windowStart.After(windowEnd) {
		windowEnd = windowEnd.AddDate(0, 0, 1)
	}

	// Слоты не генерируются для календарных дней раньше дня now
	if dayStart := utils.StartOfDay(now); windowStart.Before(dayStart) {
		windowStart = dayStart
	}

	// И не выходят за запрошенный календарный горизонт.
	// Горизонт отсчитывается от now, а не от полуночи дня now
	if maxEnd := utils.EndOfDay(now.AddDate(0, 0, calendarLengthDays)); windowEnd.After(maxEnd) {
		windowEnd = maxEnd
	}

	return windowStart, windowEnd, nil
}
