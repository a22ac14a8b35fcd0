package orders

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/orders/models"
)

type OrderService interface {
	GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.OrderResponse, error)
	ListUser(ctx context.Context, userID int64) (*models.OrderListResponse, error)
	ListAll(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error)
	Complete(ctx context.Context, id int64) (*models.OrderResponse, error)
	Cancel(ctx context.Context, id int64) (*models.OrderResponse, error)
	Annotate(ctx context.Context, id int64, notes string) (*models.OrderResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
