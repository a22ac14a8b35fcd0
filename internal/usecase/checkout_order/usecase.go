package checkout_order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/integrations/events"
	"github.com/m04kA/EquestrianHub/internal/integrations/verifier"
)

const notifyTimeout = 15 * time.Second

// UseCase оформление заказа из корзины
type UseCase struct {
	orderRepo     OrderRepository
	productRepo   ProductRepository
	cartStore     CartStore
	userRepo      UserRepository
	proofStore    ProofStore
	verifier      PaymentVerifier
	notifier      Notifier
	publisher     EventPublisher
	metrics       Metrics
	txManager     TransactionManager
	maxProofBytes int
	logger        Logger

	async func(fn func())
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	cartStore CartStore,
	userRepo UserRepository,
	proofStore ProofStore,
	verifier PaymentVerifier,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	maxProofBytes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		cartStore:     cartStore,
		userRepo:      userRepo,
		proofStore:    proofStore,
		verifier:      verifier,
		notifier:      notifier,
		publisher:     publisher,
		metrics:       metrics,
		txManager:     txManager,
		maxProofBytes: maxProofBytes,
		logger:        logger,
		async:         func(fn func()) { go fn() },
	}
}

// Execute оформляет заказ: цены фиксируются на момент покупки,
// результат проверки оплаты прикладывается к заказу и не блокирует его
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.OrderDetails, error) {
	uc.logger.Info("CheckoutOrder: user=%d", req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxProofBytes); err != nil {
		uc.logger.Warn("CheckoutOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Корзина
	lines, err := uc.cartStore.Lines(ctx, req.UserID)
	if err != nil {
		uc.logger.Error("CheckoutOrder: failed to load cart for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to load cart: %v", ErrInternal, err)
	}
	if len(lines) == 0 {
		uc.logger.Warn("CheckoutOrder: cart is empty for user=%d", req.UserID)
		return nil, ErrEmptyCart
	}

	// 3. Живые товары
	ids := make([]int64, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CheckoutOrder: failed to load products: %v", err)
		return nil, fmt.Errorf("%w: failed to load products: %v", ErrInternal, err)
	}
	if err := checkLines(lines, products); err != nil {
		uc.logger.Warn("CheckoutOrder: %v", err)
		return nil, err
	}

	// 4. Снимок цен и итог
	items := domain.BuildCart(req.UserID, lines, products).SnapshotItems()
	total := domain.CalculateOrderTotal(items)

	// 5. Сохраняем и проверяем подтверждение оплаты
	contentType := strings.ToLower(req.Proof.ContentType)
	proofRef, err := uc.proofStore.Save(ctx, req.UserID, contentType, req.Proof.Data)
	if err != nil {
		uc.logger.Error("CheckoutOrder: failed to store payment proof: %v", err)
		return nil, fmt.Errorf("%w: failed to store payment proof: %v", ErrInternal, err)
	}

	verification := uc.verifier.Verify(ctx, verifier.Document{Data: req.Proof.Data, MimeType: contentType}, total, "")
	uc.logger.Info("CheckoutOrder: payment proof %s verification=%s", proofRef, verification.Summary)

	pickup := strings.TrimSpace(req.PickupLocation)
	if pickup == "" {
		pickup = domain.DefaultPickupLocation
	}

	var details *domain.OrderDetails

	// 6. Заказ и позиции в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := uc.orderRepo.Create(txCtx, &domain.Order{
			UserID:          req.UserID,
			TotalAmount:     total,
			Status:          domain.OrderStatusPending,
			PickupLocation:  pickup,
			PaymentProofRef: &proofRef,
			Verification:    verification,
			Notes:           req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		created, err := uc.orderRepo.CreateItems(txCtx, order.ID, items)
		if err != nil {
			return fmt.Errorf("%w: failed to create order items: %v", ErrInternal, err)
		}

		// 6.1. Уверенная проверка сразу переводит заказ в verified
		if verification.IsVerified() {
			if err := order.Transition(domain.OrderStatusVerified); err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			if err := uc.orderRepo.UpdateStatus(txCtx, order.ID, domain.OrderSourcesFor(domain.OrderStatusVerified), domain.OrderStatusVerified); err != nil {
				return fmt.Errorf("%w: failed to mark order verified: %v", ErrInternal, err)
			}
		}

		details = &domain.OrderDetails{Order: *order, Items: created}
		return nil
	})
	if err != nil {
		uc.logger.Error("CheckoutOrder: transaction failed for user=%d: %v", req.UserID, err)
		if delErr := uc.proofStore.Delete(context.WithoutCancel(ctx), proofRef); delErr != nil {
			uc.logger.Warn("CheckoutOrder: failed to delete orphan payment proof %s: %v", proofRef, delErr)
		}
		return nil, err
	}

	uc.metrics.RecordOrder(string(details.Status))
	uc.logger.Info("CheckoutOrder: order id=%d created, status=%s, total=%s, items=%d",
		details.ID, details.Status, details.TotalAmount.StringFixed(2), len(details.Items))

	// 7. Побочные эффекты после коммита
	if err := uc.cartStore.Clear(ctx, req.UserID); err != nil {
		uc.logger.Warn("CheckoutOrder: failed to clear cart for user=%d: %v", req.UserID, err)
	}

	uc.publisher.Publish(ctx, events.OrderCreated, events.OrderEvent{
		OrderID:      details.ID,
		UserID:       details.UserID,
		TotalAmount:  details.TotalAmount,
		ItemsCount:   len(details.Items),
		Status:       string(details.Status),
		Verification: string(verification.Summary),
	})
	uc.notifyOperator(ctx, details)

	return details, nil
}

func (uc *UseCase) notifyOperator(ctx context.Context, details *domain.OrderDetails) {
	detached := context.WithoutCancel(ctx)

	uc.async(func() {
		ctx, cancel := context.WithTimeout(detached, notifyTimeout)
		defer cancel()

		customer, err := uc.userRepo.GetByID(ctx, details.UserID)
		if err != nil {
			uc.logger.Error("CheckoutOrder: load customer id=%d for email: %v", details.UserID, err)
			return
		}
		if err := uc.notifier.OrderCreated(ctx, details, customer); err != nil {
			uc.logger.Error("CheckoutOrder: order email for order id=%d: %v", details.ID, err)
		}
	})
}
