package domain

import "fmt"

// Дни недели по ISO-8601: 1 - понедельник, 7 - воскресенье
type Weekday int

const (
	WeekdayMonday    Weekday = 1
	WeekdayTuesday   Weekday = 2
	WeekdayWednesday Weekday = 3
	WeekdayThursday  Weekday = 4
	WeekdayFriday    Weekday = 5
	WeekdaySaturday  Weekday = 6
	WeekdaySunday    Weekday = 7
)

// TimeInWeek - повторяющаяся точка внутри недели, без таймзоны.
// Таймзона подставляется при проекции на конкретную дату
type TimeInWeek struct {
	Weekday Weekday `json:"weekday"`
	Hour    int     `json:"hour"`
	Minute  int     `json:"minute,omitempty"`
}

// Availability - одно повторяющееся недельное окно доступности.
// From и To могут попадать на разные дни недели (окно через полночь),
// это определяется сравнением спроецированных дат, а не номеров дней
type Availability struct {
	From TimeInWeek `json:"from"`
	To   TimeInWeek `json:"to"`
}

type InvalidWeekdayError struct {
	Weekday Weekday
}

func (e *InvalidWeekdayError) Error() string {
	return fmt.Sprintf("invalid weekday: %d, weekday must be between 1 (Monday) and 7 (Sunday)", e.Weekday)
}
