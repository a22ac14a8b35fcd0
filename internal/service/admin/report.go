package admin

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/admin/models"
)

const (
	topProductsLimit = 5
	trendMonths      = 6
	uncategorized    = "Uncategorized"
)

// buildAnalytics считает сводку по заказам и записям на момент now
func buildAnalytics(
	orders []*domain.Order,
	items map[int64][]domain.OrderItem,
	reservations []*domain.Reservation,
	products map[int64]*domain.Product,
	now time.Time,
) *models.AnalyticsResponse {
	resp := &models.AnalyticsResponse{
		TotalRevenue:     decimal.Zero,
		MonthlyRevenue:   decimal.Zero,
		BookingRevenue:   decimal.Zero,
		TotalOrders:      len(orders),
		TotalBookings:    len(reservations),
		OrdersByStatus:   make(map[string]int, len(domain.OrderStatuses)),
		BookingsByStatus: make(map[string]int, len(domain.ReservationStatuses)),
	}
	for _, s := range domain.OrderStatuses {
		resp.OrdersByStatus[string(s)] = 0
	}
	for _, s := range domain.ReservationStatuses {
		resp.BookingsByStatus[string(s)] = 0
	}

	productSales := make(map[string]int)
	categorySales := make(map[string]decimal.Decimal)

	for _, o := range orders {
		resp.TotalRevenue = resp.TotalRevenue.Add(o.TotalAmount)
		if sameMonth(o.CreatedAt, now) {
			resp.MonthlyRevenue = resp.MonthlyRevenue.Add(o.TotalAmount)
		}
		resp.OrdersByStatus[string(o.Status)]++

		for _, item := range items[o.ID] {
			productSales[item.ProductName] += item.Quantity
			category := uncategorized
			if p, ok := products[item.ProductID]; ok && p.Category != "" {
				category = p.Category
			}
			categorySales[category] = categorySales[category].Add(item.LineTotal())
		}
	}

	for _, r := range reservations {
		resp.BookingRevenue = resp.BookingRevenue.Add(r.TotalAmount)
		resp.BookingsByStatus[string(r.Status)]++
	}

	resp.TopProducts = topProducts(productSales)
	resp.TopCategories = topCategories(categorySales)
	resp.MonthlyTrends = monthlyTrends(orders, reservations, now)
	return resp
}

func topProducts(sales map[string]int) []models.ProductSales {
	result := make([]models.ProductSales, 0, len(sales))
	for name, qty := range sales {
		result = append(result, models.ProductSales{Name: name, Quantity: qty})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Quantity != result[j].Quantity {
			return result[i].Quantity > result[j].Quantity
		}
		return result[i].Name < result[j].Name
	})
	if len(result) > topProductsLimit {
		result = result[:topProductsLimit]
	}
	return result
}

func topCategories(sales map[string]decimal.Decimal) []models.CategoryRevenue {
	result := make([]models.CategoryRevenue, 0, len(sales))
	for category, revenue := range sales {
		result = append(result, models.CategoryRevenue{Category: category, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Revenue.Cmp(result[j].Revenue); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// monthlyTrends последние шесть месяцев, текущий последним
func monthlyTrends(orders []*domain.Order, reservations []*domain.Reservation, now time.Time) []models.MonthTrend {
	trends := make([]models.MonthTrend, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		trend := models.MonthTrend{Month: month.Format("Jan 2006"), Revenue: decimal.Zero}

		for _, o := range orders {
			if sameMonth(o.CreatedAt, month) {
				trend.Orders++
				trend.Revenue = trend.Revenue.Add(o.TotalAmount)
			}
		}
		for _, r := range reservations {
			if sameMonth(r.CreatedAt, month) {
				trend.Bookings++
				trend.Revenue = trend.Revenue.Add(r.TotalAmount)
			}
		}
		trends = append(trends, trend)
	}
	return trends
}

// buildCustomers активность по каждому пользователю. Отменённое в totalSpent не входит
func buildCustomers(users []*domain.User, orders []*domain.Order, reservations []*domain.Reservation) *models.CustomerListResponse {
	stats := make(map[int64]*domain.CustomerStats, len(users))
	for _, u := range users {
		stats[u.ID] = &domain.CustomerStats{User: *u, TotalSpent: decimal.Zero}
	}

	touch := func(s *domain.CustomerStats, at time.Time) {
		if s.LastActivity == nil || at.After(*s.LastActivity) {
			t := at
			s.LastActivity = &t
		}
	}

	for _, o := range orders {
		s, ok := stats[o.UserID]
		if !ok {
			continue
		}
		s.OrdersCount++
		if o.Status != domain.OrderStatusCancelled {
			s.TotalSpent = s.TotalSpent.Add(o.TotalAmount)
		}
		touch(s, o.CreatedAt)
	}
	for _, r := range reservations {
		s, ok := stats[r.UserID]
		if !ok {
			continue
		}
		s.BookingsCount++
		if r.Status != domain.StatusCancelled {
			s.TotalSpent = s.TotalSpent.Add(r.TotalAmount)
		}
		touch(s, r.CreatedAt)
	}

	resp := &models.CustomerListResponse{Customers: make([]models.CustomerResponse, 0, len(users))}
	for _, u := range users {
		s := stats[u.ID]
		resp.Customers = append(resp.Customers, models.CustomerResponse{
			ID:            u.ID,
			Email:         u.Email,
			Name:          u.Name,
			Surname:       u.Surname,
			ContactNumber: u.ContactNumber,
			Role:          string(u.Role),
			OrdersCount:   s.OrdersCount,
			BookingsCount: s.BookingsCount,
			TotalSpent:    s.TotalSpent,
			LastActivity:  s.LastActivity,
			CreatedAt:     u.CreatedAt,
		})
	}
	return resp
}

// buildCustomerSummary прибыль = (цена продажи - текущая себестоимость) * количество
func buildCustomerSummary(userID int64, orders []*domain.Order, items map[int64][]domain.OrderItem, products map[int64]*domain.Product) *models.CustomerSummaryResponse {
	resp := &models.CustomerSummaryResponse{
		UserID:       userID,
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}

	for _, o := range orders {
		resp.TotalRevenue = resp.TotalRevenue.Add(o.TotalAmount)
		if o.Status == domain.OrderStatusCompleted {
			resp.CompletedOrders++
		}
		for _, item := range items[o.ID] {
			cost := decimal.Zero
			if p, ok := products[item.ProductID]; ok {
				cost = p.CostPrice
			}
			margin := item.PriceAtPurchase.Sub(cost).Mul(decimal.NewFromInt(int64(item.Quantity)))
			resp.TotalProfit = resp.TotalProfit.Add(margin)
		}
	}
	return resp
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
