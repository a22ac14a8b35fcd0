package get_availability

import (
	"github.com/m04kA/EquestrianHub/internal/domain"
	getAvailability "github.com/m04kA/EquestrianHub/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	From string            `json:"from"`
	To   string            `json:"to"`
	Days []DayAvailability `json:"days"`
}

// DayAvailability вместимость дня
type DayAvailability struct {
	Date        string `json:"date"`
	TotalSlots  int    `json:"totalSlots"`
	BookedSlots int    `json:"bookedSlots"`
	Remaining   int    `json:"remaining"`
	Status      string `json:"status"` // past | full | limited | available
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayAvailability{
			Date:        domain.DateKey(day.Date),
			TotalSlots:  day.TotalSlots,
			BookedSlots: day.BookedSlots,
			Remaining:   day.Remaining,
			Status:      string(day.Status),
		}
	}

	return &AvailabilityResponse{
		From: domain.DateKey(resp.From),
		To:   domain.DateKey(resp.To),
		Days: days,
	}
}
