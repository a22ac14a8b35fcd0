package create_reservation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/integrations/verifier"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// TemplateRepository шаблоны слотов
type TemplateRepository interface {
	ListActiveByDays(ctx context.Context, days []time.Weekday) ([]*domain.TimeSlotTemplate, error)
}

// LessonTypeRepository справочник типов уроков
type LessonTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LessonType, error)
}

// UserRepository покупатель для письма оператору
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ProofStore хранилище подтверждений оплаты
type ProofStore interface {
	Save(ctx context.Context, userID int64, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// PaymentVerifier проверка подтверждения оплаты. Никогда не возвращает ошибку
type PaymentVerifier interface {
	Verify(ctx context.Context, doc verifier.Document, expected decimal.Decimal, reference string) *domain.Verification
}

// Notifier письмо оператору о новой записи
type Notifier interface {
	ReservationCreated(ctx context.Context, details *domain.ReservationDetails, customer *domain.User) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, data interface{})
}

// Metrics счётчики создания записей
type Metrics interface {
	RecordReservation(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
