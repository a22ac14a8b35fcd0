package cart

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrProductNotFound товара нет в каталоге или он снят с продажи
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuantity количество должно быть положительным
	ErrInvalidQuantity = fmt.Errorf("cart: %w: quantity must be positive", domain.ErrValidation)

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("cart.service: internal error")
)
