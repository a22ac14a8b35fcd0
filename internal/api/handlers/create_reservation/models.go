package create_reservation

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/service/reservations/models"
	createReservation "github.com/m04kA/EquestrianHub/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	LessonTypeID int64                        `json:"lessonTypeId"`
	Date         string                       `json:"date"`      // "2025-10-15"
	StartTime    string                       `json:"startTime"` // "10:00"
	EndTime      string                       `json:"endTime"`
	WeeksBooked  int                          `json:"weeksBooked"`
	TotalAmount  decimal.Decimal              `json:"totalAmount"`
	Notes        *string                      `json:"notes,omitempty"`
	PaymentProof handlers.PaymentProofPayload `json:"paymentProof"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	contentType, data, err := r.PaymentProof.Decode()
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:       userID,
		LessonTypeID: r.LessonTypeID,
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		WeeksBooked:  r.WeeksBooked,
		TotalAmount:  r.TotalAmount,
		Notes:        r.Notes,
		Proof: createReservation.PaymentProof{
			FileName:    r.PaymentProof.FileName,
			ContentType: contentType,
			Data:        data,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *models.ReservationResponse {
	return models.FromDomainDetails(resp.Details)
}
