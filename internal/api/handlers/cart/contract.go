package cart

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/service/cart/models"
)

type CartService interface {
	Get(ctx context.Context, userID int64) (*models.CartResponse, error)
	Add(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartResponse, error)
	SetQuantity(ctx context.Context, userID, productID int64, qty int) (*models.CartResponse, error)
	Remove(ctx context.Context, userID, productID int64) (*models.CartResponse, error)
	Clear(ctx context.Context, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
