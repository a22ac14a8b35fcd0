package get_day_slots

import (
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/pkg/types"
)

// Request модель запроса слотов дня
type Request struct {
	Date string // "2025-10-20"
}

// Response слоты дня и сводка вместимости
type Response struct {
	Date    time.Time
	Summary domain.DayAvailability
	Slots   []Slot
}

// Slot модель временного слота
type Slot struct {
	TemplateID      int64
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Booked          bool // есть не отменённая запись ровно на этот интервал
	Available       bool // не занят и ещё не начался
}
