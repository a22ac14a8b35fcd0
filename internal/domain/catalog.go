package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product товар магазина
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	CostPrice   decimal.Decimal
	Stock       int
	ImageURL    *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate проверяет поля, которые задаёт администратор
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: product price must be positive", ErrValidation)
	}
	if p.CostPrice.IsNegative() {
		return fmt.Errorf("%w: cost price must not be negative", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	return nil
}

// LessonType тип урока (групповой, индивидуальный, ...)
type LessonType struct {
	ID              int64
	Name            string
	Description     string
	DurationMinutes int
	PricePerHour    decimal.Decimal
	Active          bool
}
