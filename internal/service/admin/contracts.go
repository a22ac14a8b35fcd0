package admin

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/domain"
	productRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/product"
)

// OrderRepository заказы и позиции
type OrderRepository interface {
	ListWithFilter(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	ListItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error)
}

// ReservationRepository записи на уроки
type ReservationRepository interface {
	ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// ProductRepository каталог для категорий и себестоимости
type ProductRepository interface {
	List(ctx context.Context, filter productRepo.Filter) ([]*domain.Product, error)
}

// UserRepository пользователи
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
