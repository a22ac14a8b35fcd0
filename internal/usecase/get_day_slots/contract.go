package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// TemplateRepository интерфейс репозитория шаблонов слотов
type TemplateRepository interface {
	ListActiveByDays(ctx context.Context, days []time.Weekday) ([]*domain.TimeSlotTemplate, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
