package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// ListOrdersRequest фильтр админского списка
type ListOrdersRequest struct {
	Statuses []string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListOrdersRequest) ToDomainFilter() (domain.OrderFilter, error) {
	var filter domain.OrderFilter
	for _, raw := range r.Statuses {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			status, err := domain.ParseOrderStatus(part)
			if err != nil {
				return filter, err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	return filter, nil
}

// OrderItemResponse позиция заказа
type OrderItemResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// OrderResponse заказ с позициями
type OrderResponse struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"userId"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	Status          string               `json:"status"`
	PickupLocation  string               `json:"pickupLocation"`
	PaymentProofRef *string              `json:"paymentProofRef,omitempty"`
	Verification    *domain.Verification `json:"verification,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
	Items           []OrderItemResponse  `json:"items"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// FromDomainOrder заказ и его позиции в DTO
func FromDomainOrder(o *domain.Order, items []domain.OrderItem) *OrderResponse {
	if o == nil {
		return nil
	}
	resp := &OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PickupLocation:  o.PickupLocation,
		PaymentProofRef: o.PaymentProofRef,
		Verification:    o.Verification,
		Notes:           o.Notes,
		Items:           make([]OrderItemResponse, 0, len(items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
			LineTotal:       item.LineTotal(),
		})
	}
	return resp
}

// FromDomainDetails агрегат заказа в DTO
func FromDomainDetails(d *domain.OrderDetails) *OrderResponse {
	if d == nil {
		return nil
	}
	return FromDomainOrder(&d.Order, d.Items)
}

// FromDomainOrderList список заказов с позициями из map по order_id
func FromDomainOrderList(orders []*domain.Order, items map[int64][]domain.OrderItem) *OrderListResponse {
	resp := &OrderListResponse{Orders: make([]OrderResponse, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, *FromDomainOrder(o, items[o.ID]))
	}
	return resp
}
