package utils

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

var location *time.Location

func init() {
	location = time.Local
}

// SetLocation задаёт календарную зону приложения
func SetLocation(name string) {
	if name == "" {
		return
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback: системная зона
		return
	}
	location = loc
}

func Location() *time.Location {
	return location
}

// Today возвращает сегодняшнюю дату в локальном календаре
func Today() string {
	return time.Now().In(location).Format(DateLayout)
}

func FormatDate(t time.Time) string {
	return t.In(location).Format(DateLayout)
}

// ParseDate парсит дату YYYY-MM-DD в локальной зоне
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, dateStr, location)
}

// AddDays сдвигает дату на n дней (календарно, не по 24 часа)
func AddDays(dateStr string, n int) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// DaysBetween возвращает число календарных дней от a до b.
// Округление гасит сдвиг на час при переходе на летнее время.
func DaysBetween(a, b string) int {
	ta, errA := ParseDate(a)
	tb, errB := ParseDate(b)
	if errA != nil || errB != nil {
		return 0
	}
	return int(math.Round(tb.Sub(ta).Hours() / 24))
}

// ParseMonth парсит месяц YYYY-MM, возвращает первый день месяца
func ParseMonth(monthStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01", monthStr, location)
}

// DaysInMonth возвращает количество дней в месяце
func DaysInMonth(monthStart time.Time) int {
	return monthStart.AddDate(0, 1, -1).Day()
}

// MondayOnOrBefore возвращает понедельник той же недели
func MondayOnOrBefore(t time.Time) time.Time {
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// SundayOnOrAfter возвращает воскресенье той же недели
func SundayOnOrAfter(t time.Time) time.Time {
	for t.Weekday() != time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// NormalizeDateString приводит ISO-датувремя к локальной дате YYYY-MM-DD.
// Простые даты возвращаются как есть.
func NormalizeDateString(s string) string {
	if len(s) <= len(DateLayout) {
		return s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(location).Format(DateLayout)
	}
	// Неизвестный формат: отрезаем время
	return s[:len(DateLayout)]
}
