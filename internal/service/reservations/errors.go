package reservations

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrReservationNotFound запись не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied запись принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition переход статуса недопустим
	ErrInvalidTransition = fmt.Errorf("reservations: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = fmt.Errorf("reservations: %w", domain.ErrValidation)

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("reservations.service: internal error")
)
