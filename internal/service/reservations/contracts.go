package reservations

import (
	"context"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus) error
	UpdateNotes(ctx context.Context, id int64, notes *string) error
	Delete(ctx context.Context, id int64) error
	CompleteBefore(ctx context.Context, date time.Time) ([]int64, error)
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, data interface{})
}

// Metrics счётчики переходов
type Metrics interface {
	RecordTransition(entity, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
