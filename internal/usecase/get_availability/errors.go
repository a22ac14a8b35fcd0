package get_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrInvalidInput некорректный диапазон дат
	ErrInvalidInput = fmt.Errorf("get_availability: %w", domain.ErrValidation)

	// ErrRangeTooLarge диапазон длиннее calendar_max_days
	ErrRangeTooLarge = fmt.Errorf("get_availability: %w: date range is too large", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
