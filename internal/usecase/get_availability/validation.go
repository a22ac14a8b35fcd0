package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// validateRequest разбирает границы диапазона и проверяет его длину
func validateRequest(req *Request, maxDays int) (time.Time, time.Time, error) {
	if req.From == "" || req.To == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	from, err := domain.ParseDate(req.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
	}
	to, err := domain.ParseDate(req.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	// Количество дней включительно
	days := int(to.Sub(from).Hours()/24) + 1
	if maxDays > 0 && days > maxDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxDays)
	}

	return from, to, nil
}
