package get_day_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrInvalidDate некорректная дата
	ErrInvalidDate = fmt.Errorf("get_day_slots: %w: invalid date", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_slots: internal error")
)
