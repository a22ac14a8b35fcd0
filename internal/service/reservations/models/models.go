package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// Request модели

// ListReservationsRequest фильтр админского списка
type ListReservationsRequest struct {
	From     *string // YYYY-MM-DD
	To       *string // YYYY-MM-DD
	Statuses []string
	UserID   *int64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	var filter domain.ReservationFilter
	filter.UserID = r.UserID

	if r.From != nil {
		from, err := domain.ParseDate(*r.From)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &from
	}
	if r.To != nil {
		to, err := domain.ParseDate(*r.To)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &to
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, fmt.Errorf("%w: 'to' must not be before 'from'", domain.ErrValidation)
	}

	for _, raw := range r.Statuses {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			status, err := domain.ParseReservationStatus(part)
			if err != nil {
				return filter, err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	return filter, nil
}

// Response модели

// LessonTypeResponse тип урока
type LessonTypeResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"durationMinutes"`
	PricePerHour    decimal.Decimal `json:"pricePerHour"`
}

// ReservationResponse ответ с данными записи
type ReservationResponse struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"userId"`
	LessonTypeID    int64                `json:"lessonTypeId"`
	LessonType      *LessonTypeResponse  `json:"lessonType,omitempty"`
	BookingDate     string               `json:"bookingDate"` // "2025-10-15"
	StartTime       string               `json:"startTime"`   // "10:00"
	EndTime         string               `json:"endTime"`
	WeeksBooked     int                  `json:"weeksBooked"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	Status          string               `json:"status"`
	PaymentProofRef *string              `json:"paymentProofRef,omitempty"`
	Verification    *domain.Verification `json:"verification,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// ReservationListResponse ответ со списком записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainLessonType конвертирует тип урока в DTO
func FromDomainLessonType(lt *domain.LessonType) *LessonTypeResponse {
	if lt == nil {
		return nil
	}
	return &LessonTypeResponse{
		ID:              lt.ID,
		Name:            lt.Name,
		Description:     lt.Description,
		DurationMinutes: lt.DurationMinutes,
		PricePerHour:    lt.PricePerHour,
	}
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		LessonTypeID:    r.LessonTypeID,
		BookingDate:     r.BookingDate.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		WeeksBooked:     r.WeeksBooked,
		TotalAmount:     r.TotalAmount,
		Status:          string(r.Status),
		PaymentProofRef: r.PaymentProofRef,
		Verification:    r.Verification,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainDetails запись вместе с типом урока
func FromDomainDetails(d *domain.ReservationDetails) *ReservationResponse {
	if d == nil {
		return nil
	}
	resp := FromDomainReservation(&d.Reservation)
	resp.LessonType = FromDomainLessonType(&d.LessonType)
	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		if dto := FromDomainReservation(r); dto != nil {
			resp.Reservations = append(resp.Reservations, *dto)
		}
	}
	return resp
}
