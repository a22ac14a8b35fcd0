package cart

import (
	"context"
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/cart/models"
)

// Service корзина покупателя. Строки хранятся в Store, цены читаются из каталога
type Service struct {
	store       Store
	productRepo ProductRepository
	logger      Logger
}

func NewService(store Store, productRepo ProductRepository, logger Logger) *Service {
	return &Service{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get корзина с итогом по текущим ценам
func (s *Service) Get(ctx context.Context, userID int64) (*models.CartResponse, error) {
	cart, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainCart(cart), nil
}

// Load domain корзина: строки из Store + живые товары
func (s *Service) Load(ctx context.Context, userID int64) (*domain.Cart, error) {
	lines, err := s.store.Lines(ctx, userID)
	if err != nil {
		s.logger.Error("Load: store error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Load - store error: %v", ErrInternal, err)
	}
	if len(lines) == 0 {
		return domain.BuildCart(userID, nil, nil), nil
	}

	ids := make([]int64, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Load: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Load - repository error: %v", ErrInternal, err)
	}

	return domain.BuildCart(userID, lines, products), nil
}

// Add добавляет товар, количество складывается с уже имеющимся
func (s *Service) Add(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// 1. Товар должен быть в продаже
	if err := s.ensureProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	// 2. Складываем с текущим количеством
	qty, err := s.store.Add(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		s.logger.Error("Add: store error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Add - store error: %v", ErrInternal, err)
	}
	if qty > domain.MaxCartLineQuantity {
		if err := s.store.Set(ctx, userID, req.ProductID, domain.MaxCartLineQuantity); err != nil {
			return nil, fmt.Errorf("%w: Add - store error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Add: user=%d product=%d qty=%d", userID, req.ProductID, qty)
	return s.Get(ctx, userID)
}

// SetQuantity задаёт количество строки, qty <= 0 удаляет её
func (s *Service) SetQuantity(ctx context.Context, userID, productID int64, qty int) (*models.CartResponse, error) {
	if qty > domain.MaxCartLineQuantity {
		qty = domain.MaxCartLineQuantity
	}
	if err := s.store.Set(ctx, userID, productID, qty); err != nil {
		s.logger.Error("SetQuantity: store error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: SetQuantity - store error: %v", ErrInternal, err)
	}
	return s.Get(ctx, userID)
}

// Remove удаляет строку
func (s *Service) Remove(ctx context.Context, userID, productID int64) (*models.CartResponse, error) {
	if err := s.store.Remove(ctx, userID, productID); err != nil {
		s.logger.Error("Remove: store error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Remove - store error: %v", ErrInternal, err)
	}
	return s.Get(ctx, userID)
}

// Clear очищает корзину
func (s *Service) Clear(ctx context.Context, userID int64) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		s.logger.Error("Clear: store error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: Clear - store error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) ensureProduct(ctx context.Context, productID int64) error {
	products, err := s.productRepo.GetByIDs(ctx, []int64{productID})
	if err != nil {
		s.logger.Error("Add: repository error for product=%d: %v", productID, err)
		return fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}
	if p, ok := products[productID]; !ok || !p.Active {
		s.logger.Warn("Add: product=%d not found or inactive", productID)
		return ErrProductNotFound
	}
	return nil
}
