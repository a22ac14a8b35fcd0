package get_day_slots

import (
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/pkg/types"
)

// buildSlots переводит слоты дня в модель ответа.
// Для прошедшей даты все слоты недоступны, для сегодняшней недоступны уже начавшиеся
func buildSlots(daySlots []domain.DaySlot, date, now time.Time) []Slot {
	past := domain.DateOnly(date).Before(domain.DateOnly(now))
	today := domain.SameDate(date, now)
	current := types.NewTimeString(now)

	result := make([]Slot, len(daySlots))
	for i, s := range daySlots {
		started := past || (today && s.StartTime.IsBefore(current))

		result[i] = Slot{
			TemplateID:      s.TemplateID,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.EndTime.Minutes() - s.StartTime.Minutes(),
			Booked:          s.Booked,
			Available:       !s.Booked && !started,
		}
	}
	return result
}
