package cart

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// Store хранилище строк корзины (Redis или память)
type Store interface {
	Lines(ctx context.Context, userID int64) ([]domain.CartLine, error)
	Add(ctx context.Context, userID, productID int64, delta int) (int, error)
	Set(ctx context.Context, userID, productID int64, qty int) error
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

// ProductRepository живые цены каталога
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
