package utils

import (
	"time"

	"bookable-slots-generator/internal/core/domain"
)

// ISOWeekday возвращает номер дня недели по ISO-8601 (1 - понедельник, 7 - воскресенье)
func ISOWeekday(t time.Time) domain.Weekday {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return domain.Weekday(weekday)
}

// DateTimeFromWeek проецирует точку недели на ISO-неделю базовой даты.
// Таймзона базовой даты сохраняется, секунды и наносекунды обнуляются
func DateTimeFromWeek(baseDate time.Time, timeInWeek domain.TimeInWeek) (time.Time, error) {
	if timeInWeek.Weekday < domain.WeekdayMonday || timeInWeek.Weekday > domain.WeekdaySunday {
		return time.Time{}, &domain.InvalidWeekdayError{Weekday: timeInWeek.Weekday}
	}

	// Сдвигаем базовую дату на нужный день внутри той же ISO-недели
	shifted := baseDate.AddDate(0, 0, int(timeInWeek.Weekday-ISOWeekday(baseDate)))
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(),
		timeInWeek.Hour, timeInWeek.Minute, 0, 0, baseDate.Location()), nil
}

// StartOfDay возвращает полночь календарного дня даты
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay возвращает последний момент календарного дня даты
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// IsOverlapping - полуоткрытое пересечение интервалов.
// Интервалы, соприкасающиеся границами, не пересекаются
func IsOverlapping(a, b domain.TimeSlot) bool {
	return a.From.Before(b.To) && b.From.Before(a.To)
}

// IsSlotBlocked проверяет, пересекается ли слот хотя бы с одной бронью
func IsSlotBlocked(slot domain.TimeSlot, bookings []domain.TimeSlot) bool {
	for _, booking := range bookings {
		if IsOverlapping(slot, booking) {
			return true
		}
	}
	return false
}
