package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSales продажи товара в штуках
type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CategoryRevenue выручка категории
type CategoryRevenue struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// MonthTrend показатели за месяц
type MonthTrend struct {
	Month    string          `json:"month"` // "Jan 2025"
	Orders   int             `json:"orders"`
	Bookings int             `json:"bookings"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// AnalyticsResponse сводка для админки
type AnalyticsResponse struct {
	TotalRevenue     decimal.Decimal   `json:"totalRevenue"`
	MonthlyRevenue   decimal.Decimal   `json:"monthlyRevenue"`
	TotalOrders      int               `json:"totalOrders"`
	TotalBookings    int               `json:"totalBookings"`
	BookingRevenue   decimal.Decimal   `json:"bookingRevenue"`
	TopProducts      []ProductSales    `json:"topProducts"`
	TopCategories    []CategoryRevenue `json:"topCategories"`
	MonthlyTrends    []MonthTrend      `json:"monthlyTrends"`
	OrdersByStatus   map[string]int    `json:"ordersByStatus"`
	BookingsByStatus map[string]int    `json:"bookingsByStatus"`
}

// CustomerResponse покупатель с активностью
type CustomerResponse struct {
	ID            int64           `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Surname       string          `json:"surname"`
	ContactNumber string          `json:"contactNumber"`
	Role          string          `json:"role"`
	OrdersCount   int             `json:"ordersCount"`
	BookingsCount int             `json:"bookingsCount"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	LastActivity  *time.Time      `json:"lastActivity,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CustomerListResponse список покупателей
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// CustomerSummaryResponse итоги по заказам покупателя
type CustomerSummaryResponse struct {
	UserID          int64           `json:"userId"`
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	CompletedOrders int             `json:"completedOrders"`
}
