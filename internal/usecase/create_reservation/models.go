package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/pkg/types"
)

// PaymentProof загруженный документ
type PaymentProof struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Request модель запроса на создание записи
type Request struct {
	UserID       int64
	LessonTypeID int64
	Date         string // "2025-10-15"
	StartTime    string // "10:00"
	EndTime      string
	WeeksBooked  int
	TotalAmount  decimal.Decimal
	Notes        *string
	Proof        PaymentProof
}

// Response созданная запись с типом урока
type Response struct {
	Details *domain.ReservationDetails
}

// parsedRequest провалидированный запрос
type parsedRequest struct {
	date  time.Time
	start types.TimeString
	end   types.TimeString
}
