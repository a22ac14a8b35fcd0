package checkout_order

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/domain"
	checkoutOrder "github.com/m04kA/EquestrianHub/internal/usecase/checkout_order"
)

type CheckoutUseCase interface {
	Execute(ctx context.Context, req *checkoutOrder.Request) (*domain.OrderDetails, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
