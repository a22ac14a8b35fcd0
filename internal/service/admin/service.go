package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	productRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/product"
	userRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/user"
	"github.com/m04kA/EquestrianHub/internal/service/admin/models"
)

// Service отчёты админки: аналитика, покупатели, сводка по покупателю
type Service struct {
	orderRepo       OrderRepository
	reservationRepo ReservationRepository
	productRepo     ProductRepository
	userRepo        UserRepository
	txManager       TxManager
	logger          Logger
	now             func() time.Time
}

func NewService(
	orderRepo OrderRepository,
	reservationRepo ReservationRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		reservationRepo: reservationRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		logger:          logger,
		now:             time.Now,
	}
}

// dataset срез данных для отчётов, читается одним снимком
type dataset struct {
	orders       []*domain.Order
	items        map[int64][]domain.OrderItem
	reservations []*domain.Reservation
	products     map[int64]*domain.Product
	users        []*domain.User
}

// Analytics сводка по выручке, товарам, записям и трендам за полгода
func (s *Service) Analytics(ctx context.Context) (*models.AnalyticsResponse, error) {
	data, err := s.load(ctx, "Analytics", domain.OrderFilter{}, domain.ReservationFilter{}, false)
	if err != nil {
		return nil, err
	}

	resp := buildAnalytics(data.orders, data.items, data.reservations, data.products, s.now())
	s.logger.Info("Analytics: built over %d orders and %d reservations", resp.TotalOrders, resp.TotalBookings)
	return resp, nil
}

// Customers пользователи со счётчиками заказов и записей
func (s *Service) Customers(ctx context.Context) (*models.CustomerListResponse, error) {
	data, err := s.load(ctx, "Customers", domain.OrderFilter{}, domain.ReservationFilter{}, true)
	if err != nil {
		return nil, err
	}

	return buildCustomers(data.users, data.orders, data.reservations), nil
}

// CustomerSummary итоги по заказам одного покупателя, включая прибыль
func (s *Service) CustomerSummary(ctx context.Context, userID int64) (*models.CustomerSummaryResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("CustomerSummary: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: CustomerSummary - repository error: %v", ErrInternal, err)
	}

	data, err := s.load(ctx, "CustomerSummary", domain.OrderFilter{UserID: &userID}, domain.ReservationFilter{UserID: &userID}, false)
	if err != nil {
		return nil, err
	}

	return buildCustomerSummary(userID, data.orders, data.items, data.products), nil
}

func (s *Service) load(ctx context.Context, op string, orderFilter domain.OrderFilter, reservationFilter domain.ReservationFilter, withUsers bool) (*dataset, error) {
	data := &dataset{}

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if data.orders, err = s.orderRepo.ListWithFilter(ctx, orderFilter); err != nil {
			return err
		}

		ids := make([]int64, len(data.orders))
		for i, o := range data.orders {
			ids[i] = o.ID
		}
		if data.items, err = s.orderRepo.ListItems(ctx, ids); err != nil {
			return err
		}

		if data.reservations, err = s.reservationRepo.ListWithFilter(ctx, reservationFilter); err != nil {
			return err
		}

		products, err := s.productRepo.List(ctx, productRepo.Filter{IncludeInactive: true})
		if err != nil {
			return err
		}
		data.products = make(map[int64]*domain.Product, len(products))
		for _, p := range products {
			data.products[p.ID] = p
		}

		if withUsers {
			if data.users, err = s.userRepo.List(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return data, nil
}
