package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/EquestrianHub/pkg/types"
)

// TimeSlotTemplate еженедельный шаблон слота: день недели + интервал времени
// Booking-флоу шаблоны только читает, создаёт и меняет их администратор
type TimeSlotTemplate struct {
	ID        int64
	DayOfWeek time.Weekday // 0 = воскресенье
	StartTime types.TimeString
	EndTime   types.TimeString
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет день недели и интервал
func (t *TimeSlotTemplate) Validate() error {
	if t.DayOfWeek < time.Sunday || t.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: day of week must be 0-6, got %d", ErrValidation, t.DayOfWeek)
	}
	if t.StartTime.IsZero() || t.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrValidation)
	}
	if !t.StartTime.IsBefore(t.EndTime) {
		return fmt.Errorf("%w: start time %s must be before end time %s", ErrValidation, t.StartTime, t.EndTime)
	}
	return nil
}

// AppliesTo true, если шаблон активен и совпадает по дню недели с датой
func (t *TimeSlotTemplate) AppliesTo(date time.Time) bool {
	return t.Active && t.DayOfWeek == date.Weekday()
}

// Matches true, если шаблон описывает ровно этот интервал
func (t *TimeSlotTemplate) Matches(start, end types.TimeString) bool {
	return t.StartTime.Equal(start) && t.EndTime.Equal(end)
}

// DurationMinutes длительность слота
func (t *TimeSlotTemplate) DurationMinutes() int {
	return t.EndTime.Minutes() - t.StartTime.Minutes()
}
