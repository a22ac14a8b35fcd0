package domain

import (
	"sort"
	"time"

	"github.com/m04kA/EquestrianHub/pkg/types"
)

// DayStatus статус дня в календаре
type DayStatus string

const (
	DayPast      DayStatus = "past"
	DayFull      DayStatus = "full"
	DayLimited   DayStatus = "limited"
	DayAvailable DayStatus = "available"
)

// DayAvailability вместимость одного дня
type DayAvailability struct {
	Date        time.Time
	TotalSlots  int
	BookedSlots int
	Remaining   int
	Status      DayStatus
}

// DaySlot слот конкретной даты
type DaySlot struct {
	TemplateID int64
	StartTime  types.TimeString
	EndTime    types.TimeString
	Booked     bool
}

// ClassifyDay past / full / limited / available
func ClassifyDay(date, today time.Time, remaining int) DayStatus {
	switch {
	case DateOnly(date).Before(DateOnly(today)):
		return DayPast
	case remaining <= 0:
		return DayFull
	case remaining <= LimitedAvailabilityMark:
		return DayLimited
	default:
		return DayAvailable
	}
}

// ComputeAvailability считает вместимость каждого дня диапазона [rangeStart, rangeEnd].
// Функция чистая: шаблоны и записи передаются уже загруженными.
//   - totalSlots: активные шаблоны с тем же днём недели
//   - bookedSlots: записи этой даты в статусах pending/confirmed (completed место не занимает)
//   - remaining: max(0, total - booked)
func ComputeAvailability(
	templates []*TimeSlotTemplate,
	reservations []*Reservation,
	rangeStart, rangeEnd, today time.Time,
) map[string]DayAvailability {
	rangeStart, rangeEnd = DateOnly(rangeStart), DateOnly(rangeEnd)
	result := make(map[string]DayAvailability)
	if rangeEnd.Before(rangeStart) {
		return result
	}

	totalByWeekday := make(map[time.Weekday]int, 7)
	for _, t := range templates {
		if t.Active {
			totalByWeekday[t.DayOfWeek]++
		}
	}

	bookedByDate := make(map[string]int)
	for _, r := range reservations {
		if r.Status.ConsumesCapacity() {
			bookedByDate[DateKey(r.BookingDate)]++
		}
	}

	for d := rangeStart; !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		key := DateKey(d)
		total := totalByWeekday[d.Weekday()]
		booked := bookedByDate[key]

		remaining := total - booked
		if remaining < 0 {
			remaining = 0
		}

		result[key] = DayAvailability{
			Date:        d,
			TotalSlots:  total,
			BookedSlots: booked,
			Remaining:   remaining,
			Status:      ClassifyDay(d, today, remaining),
		}
	}

	return result
}

// SortedDays переводит map из ComputeAvailability в срез по возрастанию даты
func SortedDays(days map[string]DayAvailability) []DayAvailability {
	out := make([]DayAvailability, 0, len(days))
	for _, d := range days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// SlotsForDate слоты даты по активным шаблонам её дня недели, отсортированные по началу.
// Слот помечается booked, если есть не отменённая запись с точно таким же (start, end)
func SlotsForDate(templates []*TimeSlotTemplate, reservations []*Reservation, date time.Time) []DaySlot {
	slots := make([]DaySlot, 0)
	for _, t := range templates {
		if !t.AppliesTo(date) {
			continue
		}

		booked := false
		for _, r := range reservations {
			if r.OccupiesSlot(date, t.StartTime, t.EndTime) {
				booked = true
				break
			}
		}

		slots = append(slots, DaySlot{
			TemplateID: t.ID,
			StartTime:  t.StartTime,
			EndTime:    t.EndTime,
			Booked:     booked,
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
	return slots
}
