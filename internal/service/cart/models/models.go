package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// AddItemRequest добавление товара в корзину
type AddItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// SetQuantityRequest новое количество строки. <= 0 удаляет строку
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse строка корзины с текущей ценой
type CartItemResponse struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	ImageURL  *string         `json:"imageUrl,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartResponse корзина
type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Total     decimal.Decimal    `json:"total"`
}

// FromDomainCart конвертирует domain корзину в DTO
func FromDomainCart(c *domain.Cart) *CartResponse {
	resp := &CartResponse{
		Items:     make([]CartItemResponse, 0, len(c.Items)),
		ItemCount: c.ItemCount(),
		Total:     c.Total,
	}
	for _, item := range c.Items {
		resp.Items = append(resp.Items, CartItemResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Category:  item.Product.Category,
			ImageURL:  item.Product.ImageURL,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return resp
}
