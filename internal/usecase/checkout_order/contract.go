package checkout_order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/integrations/verifier"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateItems(ctx context.Context, orderID int64, items []domain.OrderItem) ([]domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.OrderStatus, to domain.OrderStatus) error
}

// ProductRepository живые товары каталога
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
}

// CartStore строки корзины
type CartStore interface {
	Lines(ctx context.Context, userID int64) ([]domain.CartLine, error)
	Clear(ctx context.Context, userID int64) error
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

// Notifier письмо оператору о новом заказе
type Notifier interface {
	OrderCreated(ctx context.Context, order *domain.OrderDetails, customer *domain.User) error
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, data interface{})
}

// Metrics счётчик оформленных заказов
type Metrics interface {
	RecordOrder(status string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
