package timeslots

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов слотов
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.TimeSlotTemplate) (*domain.TimeSlotTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlotTemplate, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.TimeSlotTemplate, error)
	Update(ctx context.Context, template *domain.TimeSlotTemplate) (*domain.TimeSlotTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
