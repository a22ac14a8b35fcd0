package get_availability

import (
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// Request диапазон календаря, обе границы включительно
type Request struct {
	From string // "2025-10-01"
	To   string // "2025-10-31"
}

// Response дни диапазона по возрастанию даты
type Response struct {
	From time.Time
	To   time.Time
	Days []domain.DayAvailability
}
