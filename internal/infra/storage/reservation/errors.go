package reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var (
	// ErrReservationNotFound запись не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotNotAvailable слот уже занят активной записью (нарушение ux_lesson_bookings_active_slot)
	ErrSlotNotAvailable = fmt.Errorf("reservation.repository: %w", domain.ErrSlotUnavailable)

	// ErrStatusConflict условное обновление статуса не затронуло ни одной строки
	ErrStatusConflict = errors.New("reservation.repository: status precondition failed")

	ErrBuildQuery = errors.New("reservation.repository: failed to build query")
	ErrExecQuery  = errors.New("reservation.repository: failed to execute query")
	ErrScanRow    = errors.New("reservation.repository: failed to scan row")
)
