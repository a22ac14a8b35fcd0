package domain

import (
	"fmt"
	"time"
)

// DateOnly обрезает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate сравнивает только календарные даты
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateKey ключ даты вида YYYY-MM-DD
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate парсит YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return d, nil
}

// WeekdaysInRange дни недели, встречающиеся в диапазоне дат (включительно)
func WeekdaysInRange(start, end time.Time) []time.Weekday {
	start, end = DateOnly(start), DateOnly(end)
	seen := make(map[time.Weekday]bool, 7)
	days := make([]time.Weekday, 0, 7)

	for d := start; !d.After(end) && len(days) < 7; d = d.AddDate(0, 0, 1) {
		if !seen[d.Weekday()] {
			seen[d.Weekday()] = true
			days = append(days, d.Weekday())
		}
	}
	return days
}
