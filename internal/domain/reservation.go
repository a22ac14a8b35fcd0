package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/pkg/types"
)

// ReservationStatus статус записи на урок
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// ReservationStatuses все допустимые статусы в порядке жизненного цикла
var ReservationStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// CapacityStatuses статусы, которые занимают слот
var CapacityStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ParseReservationStatus строка -> статус с проверкой
func ParseReservationStatus(s string) (ReservationStatus, error) {
	for _, status := range ReservationStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unknown reservation status %q", ErrValidation, s)
}

// CanTransitionTo проверяет допустимость перехода
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal true для completed и cancelled
func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

// ConsumesCapacity true, если запись в этом статусе занимает слот
func (s ReservationStatus) ConsumesCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

// SourcesFor статусы, из которых можно перейти в target
func SourcesFor(target ReservationStatus) []ReservationStatus {
	sources := make([]ReservationStatus, 0, 2)
	for _, from := range ReservationStatuses {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Reservation запись на урок верховой езды
type Reservation struct {
	ID              int64
	UserID          int64
	LessonTypeID    int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	WeeksBooked     int
	TotalAmount     decimal.Decimal
	Status          ReservationStatus
	PaymentProofRef *string
	Verification    *Verification
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transition меняет статус, если переход допустим
func (r *Reservation) Transition(next ReservationStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: reservation %d %s -> %s", ErrInvalidTransition, r.ID, r.Status, next)
	}
	r.Status = next
	return nil
}

// OccupiesSlot true, если запись совпадает со слотом (date, start, end) и занимает его
func (r *Reservation) OccupiesSlot(date time.Time, start, end types.TimeString) bool {
	return r.Status != StatusCancelled &&
		SameDate(r.BookingDate, date) &&
		r.StartTime.Equal(start) &&
		r.EndTime.Equal(end)
}

// ReservationDetails запись вместе с типом урока (агрегат для чтения)
type ReservationDetails struct {
	Reservation
	LessonType LessonType
}

// ReservationFilter фильтр выборки записей
type ReservationFilter struct {
	UserID       *int64
	LessonTypeID *int64
	StartDate    *time.Time
	EndDate      *time.Time
	Statuses     []ReservationStatus // пусто = все статусы
}

// IsSingleDate true, если фильтр ограничен одной датой
func (f ReservationFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDate(*f.StartDate, *f.EndDate)
}
