package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	orderRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/order"
	"github.com/m04kA/EquestrianHub/internal/integrations/events"
	"github.com/m04kA/EquestrianHub/internal/service/orders/models"
)

const notifyTimeout = 15 * time.Second

// Service сервис заказов: чтение, переходы статусов, заметки
type Service struct {
	orderRepo OrderRepository
	userRepo  UserRepository
	txManager TxManager
	notifier  Notifier
	publisher EventPublisher
	metrics   Metrics
	logger    Logger

	async func(fn func())
}

func NewService(
	orderRepo OrderRepository,
	userRepo UserRepository,
	txManager TxManager,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		txManager: txManager,
		notifier:  notifier,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		async:     func(fn func()) { go fn() },
	}
}

// GetByID заказ с позициями. Доступен владельцу и администратору
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for user=%d", id, actor.UserID)

	details, err := s.orderRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccess(details.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to order id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainDetails(details), nil
}

// ListUser заказы пользователя
func (s *Service) ListUser(ctx context.Context, userID int64) (*models.OrderListResponse, error) {
	return s.list(ctx, "ListUser", domain.OrderFilter{UserID: &userID})
}

// ListAll все заказы с фильтром по статусу (администратор)
func (s *Service) ListAll(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAll: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.list(ctx, "ListAll", filter)
}

// Complete pending|verified -> completed, покупатель получает письмо
func (s *Service) Complete(ctx context.Context, id int64) (*models.OrderResponse, error) {
	return s.transition(ctx, "Complete", id, domain.OrderStatusCompleted)
}

// Cancel pending|verified -> cancelled
func (s *Service) Cancel(ctx context.Context, id int64) (*models.OrderResponse, error) {
	return s.transition(ctx, "Cancel", id, domain.OrderStatusCancelled)
}

// Annotate заметки администратора
func (s *Service) Annotate(ctx context.Context, id int64, notes string) (*models.OrderResponse, error) {
	if len(notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var value *string
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		value = &trimmed
	}

	if err := s.orderRepo.UpdateNotes(ctx, id, value); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("Annotate: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Annotate - repository error: %v", ErrInternal, err)
	}

	return s.reload(ctx, "Annotate", id)
}

// Delete удаляет заказ вместе с позициями в одной транзакции
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.orderRepo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("Delete: repository error for order id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: order id=%d deleted", id)
	return nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.OrderFilter) (*models.OrderListResponse, error) {
	orders, err := s.orderRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := s.orderRepo.ListItems(ctx, ids)
	if err != nil {
		s.logger.Error("%s: repository error on items: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d orders", op, len(orders))
	return models.FromDomainOrderList(orders, items), nil
}

// transition:
// 1. читаем заказ
// 2. проверяем переход по таблице
// 3. условный UPDATE ... WHERE status = ANY(sources)
// 4. событие, письмо покупателю при completed
func (s *Service) transition(ctx context.Context, op string, id int64, to domain.OrderStatus) (*models.OrderResponse, error) {
	s.logger.Info("%s: order id=%d -> %s", op, id, to)

	// 1. Текущее состояние
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%d not found", op, id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: repository error for order id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	// 2. Таблица переходов
	previous := order.Status
	if err := order.Transition(to); err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, to)
	}

	// 3. Условное обновление
	if err := s.orderRepo.UpdateStatus(ctx, id, domain.OrderSourcesFor(to), to); err != nil {
		if errors.Is(err, orderRepo.ErrStatusConflict) {
			s.logger.Warn("%s: order id=%d changed concurrently", op, id)
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("%s: repository error for order id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	// 4. Побочные эффекты не влияют на результат
	s.metrics.RecordTransition("order", string(to))
	s.publisher.Publish(ctx, events.OrderStatusChanged, events.OrderEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		Status:        string(to),
		PreviousState: string(previous),
	})
	if to == domain.OrderStatusCompleted {
		s.notifyCustomer(ctx, order)
	}

	s.logger.Info("%s: order id=%d %s -> %s", op, id, previous, to)
	return s.reload(ctx, op, id)
}

func (s *Service) notifyCustomer(ctx context.Context, order *domain.Order) {
	detached := context.WithoutCancel(ctx)
	snapshot := *order

	s.async(func() {
		ctx, cancel := context.WithTimeout(detached, notifyTimeout)
		defer cancel()

		customer, err := s.userRepo.GetByID(ctx, snapshot.UserID)
		if err != nil {
			s.logger.Error("notifyCustomer: load user=%d for order id=%d: %v", snapshot.UserID, snapshot.ID, err)
			return
		}
		if err := s.notifier.OrderStatusChanged(ctx, &snapshot, customer); err != nil {
			s.logger.Error("notifyCustomer: order id=%d: %v", snapshot.ID, err)
		}
	})
}

func (s *Service) reload(ctx context.Context, op string, id int64) (*models.OrderResponse, error) {
	details, err := s.orderRepo.GetDetails(ctx, id)
	if err != nil {
		s.logger.Error("%s: reload order id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - reload: %v", ErrInternal, op, err)
	}
	return models.FromDomainDetails(details), nil
}
