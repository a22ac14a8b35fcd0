package orders

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetDetails(ctx context.Context, id int64) (*domain.OrderDetails, error)
	ListWithFilter(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	ListItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.OrderStatus, to domain.OrderStatus) error
	UpdateNotes(ctx context.Context, id int64, notes *string) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository покупатель для письма о смене статуса
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier письма покупателю
type Notifier interface {
	OrderStatusChanged(ctx context.Context, order *domain.Order, customer *domain.User) error
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
