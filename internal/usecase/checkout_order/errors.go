package checkout_order

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = fmt.Errorf("checkout_order: %w", domain.ErrValidation)

	// ErrEmptyCart корзина пуста
	ErrEmptyCart = fmt.Errorf("checkout_order: %w: cart is empty", domain.ErrValidation)

	// ErrProductUnavailable товар из корзины удалён или снят с продажи
	ErrProductUnavailable = fmt.Errorf("checkout_order: %w: product is no longer available", domain.ErrValidation)

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("checkout_order: internal error")
)
