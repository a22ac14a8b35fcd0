package orders

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrOrderNotFound заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrAccessDenied заказ принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition переход статуса недопустим
	ErrInvalidTransition = fmt.Errorf("orders: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = fmt.Errorf("orders: %w", domain.ErrValidation)

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("orders.service: internal error")
)
