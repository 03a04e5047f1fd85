package services

import "bookable-slots-generator/internal/core/domain"

type SlotSlice []domain.TimeSlot

// quickSort сортирует слоты по времени начала
func (s SlotSlice) quickSort() SlotSlice {
	if len(s) < 2 {
		return s
	}

	// Выбираем опорный элемент
	pivot := s[len(s)/2]

	// Разделяем слайс на три части
	less := SlotSlice{}
	equal := SlotSlice{}
	greater := SlotSlice{}

	for _, slot := range s {
		if slot.From.Before(pivot.From) {
			less = append(less, slot)
		} else if slot.From.Equal(pivot.From) {
			equal = append(equal, slot)
		} else {
			greater = append(greater, slot)
		}
	}

	// Рекурсивно сортируем подмассивы и объединяем их
	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}
