package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ключи маршрутизации
const (
	ReservationCreated       = "reservation.created"
	ReservationStatusChanged = "reservation.status_changed"
	OrderCreated             = "order.created"
	OrderStatusChanged       = "order.status_changed"
)

// Envelope конверт события
type Envelope struct {
	EventID    string      `json:"event_id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// ReservationEvent данные событий записи
type ReservationEvent struct {
	ReservationID int64           `json:"reservation_id"`
	UserID        int64           `json:"user_id"`
	LessonTypeID  int64           `json:"lesson_type_id"`
	Date          string          `json:"date"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	PreviousState string          `json:"previous_status,omitempty"`
	Verification  string          `json:"verification,omitempty"`
}

// OrderEvent данные событий заказа
type OrderEvent struct {
	OrderID       int64           `json:"order_id"`
	UserID        int64           `json:"user_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemsCount    int             `json:"items_count,omitempty"`
	Status        string          `json:"status"`
	PreviousState string          `json:"previous_status,omitempty"`
	Verification  string          `json:"verification,omitempty"`
}
