package get_day_slots

import (
	"github.com/m04kA/EquestrianHub/internal/api/handlers/get_availability"
	"github.com/m04kA/EquestrianHub/internal/domain"
	getDaySlots "github.com/m04kA/EquestrianHub/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date    string                           `json:"date"`
	Summary get_availability.DayAvailability `json:"summary"`
	Slots   []Slot                           `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	TemplateID      int64  `json:"templateId"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Booked          bool   `json:"booked"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			TemplateID:      slot.TemplateID,
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Booked:          slot.Booked,
			Available:       slot.Available,
		}
	}

	return &DaySlotsResponse{
		Date: domain.DateKey(resp.Date),
		Summary: get_availability.DayAvailability{
			Date:        domain.DateKey(resp.Summary.Date),
			TotalSlots:  resp.Summary.TotalSlots,
			BookedSlots: resp.Summary.BookedSlots,
			Remaining:   resp.Summary.Remaining,
			Status:      string(resp.Summary.Status),
		},
		Slots: slots,
	}
}
