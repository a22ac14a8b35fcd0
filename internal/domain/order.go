package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus статус заказа в магазине
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusVerified  OrderStatus = "verified"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusVerified,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// verified достижим только через успешную автоматическую проверку оплаты,
// completed только через действие администратора
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:  {OrderStatusVerified, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusVerified: {OrderStatusCompleted, OrderStatusCancelled},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range OrderStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// OrderSourcesFor статусы, из которых можно перейти в target
func OrderSourcesFor(target OrderStatus) []OrderStatus {
	sources := make([]OrderStatus, 0, 2)
	for _, from := range OrderStatuses {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

// OrderItem позиция заказа. Цена и название зафиксированы на момент покупки
type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	ProductName     string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// LineTotal quantity * priceAtPurchase
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order заказ в магазине
type Order struct {
	ID              int64
	UserID          int64
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	PickupLocation  string
	PaymentProofRef *string
	Verification    *Verification
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) Transition(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: order %d %s -> %s", ErrInvalidTransition, o.ID, o.Status, next)
	}
	o.Status = next
	return nil
}

// OrderDetails заказ вместе с позициями (агрегат для чтения)
type OrderDetails struct {
	Order
	Items []OrderItem
}

// CalculateOrderTotal сумма quantity * priceAtPurchase по всем позициям
func CalculateOrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// OrderFilter фильтр выборки заказов
type OrderFilter struct {
	UserID   *int64
	Statuses []OrderStatus
}
