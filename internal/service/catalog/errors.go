package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrProductNotFound товар не найден или снят с продажи
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidInput некорректные данные товара
	ErrInvalidInput = fmt.Errorf("catalog: %w", domain.ErrValidation)

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("catalog.service: internal error")
)
