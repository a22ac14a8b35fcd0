package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// Request модели

// ProductRequest создание или полная замена товара (администратор)
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Active      *bool           `json:"active,omitempty"` // по умолчанию true
}

// ToDomainProduct конвертирует request в domain модель
func (r *ProductRequest) ToDomainProduct(id int64) *domain.Product {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		CostPrice:   r.CostPrice,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		Active:      active,
	}
}

// Response модели

// ProductResponse товар для витрины. Себестоимость не отдаётся
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Active      bool            `json:"active"`
}

// AdminProductResponse товар для админки
type AdminProductResponse struct {
	ProductResponse
	CostPrice decimal.Decimal `json:"costPrice"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductListResponse список товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// AdminProductListResponse список товаров для админки
type AdminProductListResponse struct {
	Products []AdminProductResponse `json:"products"`
}

// LessonTypeResponse тип урока
type LessonTypeResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"durationMinutes"`
	PricePerHour    decimal.Decimal `json:"pricePerHour"`
}

// LessonTypeListResponse список типов уроков
type LessonTypeListResponse struct {
	LessonTypes []LessonTypeResponse `json:"lessonTypes"`
}

func FromDomainProduct(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
	}
}

func FromDomainAdminProduct(p *domain.Product) *AdminProductResponse {
	if p == nil {
		return nil
	}
	return &AdminProductResponse{
		ProductResponse: *FromDomainProduct(p),
		CostPrice:       p.CostPrice,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromDomainProductList(products []*domain.Product) *ProductListResponse {
	resp := &ProductListResponse{Products: make([]ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, *FromDomainProduct(p))
	}
	return resp
}

func FromDomainAdminProductList(products []*domain.Product) *AdminProductListResponse {
	resp := &AdminProductListResponse{Products: make([]AdminProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, *FromDomainAdminProduct(p))
	}
	return resp
}

func FromDomainLessonTypeList(types []*domain.LessonType) *LessonTypeListResponse {
	resp := &LessonTypeListResponse{LessonTypes: make([]LessonTypeResponse, 0, len(types))}
	for _, lt := range types {
		resp.LessonTypes = append(resp.LessonTypes, LessonTypeResponse{
			ID:              lt.ID,
			Name:            lt.Name,
			Description:     lt.Description,
			DurationMinutes: lt.DurationMinutes,
			PricePerHour:    lt.PricePerHour,
		})
	}
	return resp
}
