package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = fmt.Errorf("create_reservation: %w", domain.ErrValidation)

	// ErrLessonTypeNotFound тип урока не найден или выключен
	ErrLessonTypeNotFound = fmt.Errorf("create_reservation: %w: lesson type not found", domain.ErrValidation)

	// ErrSlotNotAvailable слот занят или не существует в расписании
	ErrSlotNotAvailable = fmt.Errorf("create_reservation: %w", domain.ErrSlotUnavailable)

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
