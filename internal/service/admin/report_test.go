package admin

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func fixtures() ([]*domain.Order, map[int64][]domain.OrderItem, []*domain.Reservation, map[int64]*domain.Product) {
	orders := []*domain.Order{
		{ID: 1, UserID: 10, TotalAmount: dec(130), Status: domain.OrderStatusCompleted, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: 2, UserID: 11, TotalAmount: dec(80), Status: domain.OrderStatusPending, CreatedAt: now.AddDate(0, -2, 0)},
		{ID: 3, UserID: 10, TotalAmount: dec(40), Status: domain.OrderStatusCancelled, CreatedAt: now.AddDate(-1, 0, 0)},
	}
	items := map[int64][]domain.OrderItem{
		1: {
			{OrderID: 1, ProductID: 100, ProductName: "Saddle pad", Quantity: 2, PriceAtPurchase: dec(50)},
			{OrderID: 1, ProductID: 101, ProductName: "Hoof pick", Quantity: 1, PriceAtPurchase: dec(30)},
		},
		2: {{OrderID: 2, ProductID: 101, ProductName: "Hoof pick", Quantity: 2, PriceAtPurchase: dec(40)}},
		3: {{OrderID: 3, ProductID: 999, ProductName: "Gone", Quantity: 1, PriceAtPurchase: dec(40)}},
	}
	reservations := []*domain.Reservation{
		{ID: 1, UserID: 10, TotalAmount: dec(450), Status: domain.StatusConfirmed, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: 2, UserID: 12, TotalAmount: dec(450), Status: domain.StatusCancelled, CreatedAt: now.AddDate(0, -1, 0)},
	}
	products := map[int64]*domain.Product{
		100: {ID: 100, Category: "tack", CostPrice: dec(20)},
		101: {ID: 101, Category: "grooming", CostPrice: dec(10)},
	}
	return orders, items, reservations, products
}

func TestBuildAnalytics(t *testing.T) {
	orders, items, reservations, products := fixtures()

	resp := buildAnalytics(orders, items, reservations, products, now)

	assert.True(t, resp.TotalRevenue.Equal(dec(250)), resp.TotalRevenue.String())
	assert.True(t, resp.MonthlyRevenue.Equal(dec(130)), resp.MonthlyRevenue.String())
	assert.True(t, resp.BookingRevenue.Equal(dec(900)))
	assert.Equal(t, 3, resp.TotalOrders)
	assert.Equal(t, 2, resp.TotalBookings)

	require.NotEmpty(t, resp.TopProducts)
	assert.Equal(t, "Hoof pick", resp.TopProducts[0].Name)
	assert.Equal(t, 3, resp.TopProducts[0].Quantity)

	require.Len(t, resp.TopCategories, 3)
	assert.Equal(t, "grooming", resp.TopCategories[0].Category)
	assert.True(t, resp.TopCategories[0].Revenue.Equal(dec(110)))
	assert.Equal(t, uncategorized, resp.TopCategories[2].Category)

	require.Len(t, resp.MonthlyTrends, 6)
	assert.Equal(t, "Jan 2025", resp.MonthlyTrends[0].Month)
	last := resp.MonthlyTrends[5]
	assert.Equal(t, "Jun 2025", last.Month)
	assert.Equal(t, 1, last.Orders)
	assert.Equal(t, 1, last.Bookings)
	assert.True(t, last.Revenue.Equal(dec(580)))

	assert.Equal(t, map[string]int{"pending": 1, "verified": 0, "completed": 1, "cancelled": 1}, resp.OrdersByStatus)
	assert.Equal(t, 0, resp.BookingsByStatus["pending"])
	assert.Equal(t, 1, resp.BookingsByStatus["confirmed"])
}

func TestBuildCustomers(t *testing.T) {
	orders, _, reservations, _ := fixtures()
	users := []*domain.User{{ID: 10, Email: "a@x"}, {ID: 11, Email: "b@x"}, {ID: 13, Email: "idle@x"}}

	resp := buildCustomers(users, orders, reservations)

	require.Len(t, resp.Customers, 3)
	first := resp.Customers[0]
	assert.Equal(t, 2, first.OrdersCount)
	assert.Equal(t, 1, first.BookingsCount)
	assert.True(t, first.TotalSpent.Equal(dec(580)), first.TotalSpent.String())
	require.NotNil(t, first.LastActivity)
	assert.Equal(t, now.AddDate(0, 0, -1), *first.LastActivity)

	idle := resp.Customers[2]
	assert.Zero(t, idle.OrdersCount)
	assert.Nil(t, idle.LastActivity)
}

func TestBuildCustomerSummary(t *testing.T) {
	orders, items, _, products := fixtures()
	var own []*domain.Order
	for _, o := range orders {
		if o.UserID == 10 {
			own = append(own, o)
		}
	}

	resp := buildCustomerSummary(10, own, items, products)

	assert.Equal(t, 2, resp.TotalOrders)
	assert.Equal(t, 1, resp.CompletedOrders)
	assert.True(t, resp.TotalRevenue.Equal(dec(170)))
	// (50-20)*2 + (30-10)*1 + (40-0)*1
	assert.True(t, resp.TotalProfit.Equal(dec(120)), resp.TotalProfit.String())
}
