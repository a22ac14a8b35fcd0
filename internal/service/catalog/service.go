package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	productRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/product"
	"github.com/m04kA/EquestrianHub/internal/service/catalog/models"
)

// Service каталог товаров и типов уроков
type Service struct {
	productRepo    ProductRepository
	lessonTypeRepo LessonTypeRepository
	logger         Logger
}

func NewService(productRepo ProductRepository, lessonTypeRepo LessonTypeRepository, logger Logger) *Service {
	return &Service{
		productRepo:    productRepo,
		lessonTypeRepo: lessonTypeRepo,
		logger:         logger,
	}
}

// ListProducts активные товары, опционально по категории
func (s *Service) ListProducts(ctx context.Context, category string) (*models.ProductListResponse, error) {
	filter := productRepo.Filter{}
	if category = strings.TrimSpace(category); category != "" {
		filter.Category = &category
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListProducts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProducts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProductList(products), nil
}

// GetProduct активный товар по ID. Снятый с продажи товар для витрины не существует
func (s *Service) GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("GetProduct: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetProduct - repository error: %v", ErrInternal, err)
	}
	if !product.Active {
		return nil, ErrProductNotFound
	}

	return models.FromDomainProduct(product), nil
}

// ListAll все товары, включая неактивные (администратор)
func (s *Service) ListAll(ctx context.Context) (*models.AdminProductListResponse, error) {
	products, err := s.productRepo.List(ctx, productRepo.Filter{IncludeInactive: true})
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAdminProductList(products), nil
}

// Create новый товар (администратор)
func (s *Service) Create(ctx context.Context, req *models.ProductRequest) (*models.AdminProductResponse, error) {
	product := req.ToDomainProduct(0)
	if err := product.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: product id=%d created", created.ID)
	return models.FromDomainAdminProduct(created), nil
}

// Update полная замена полей товара (администратор)
func (s *Service) Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.AdminProductResponse, error) {
	product := req.ToDomainProduct(id)
	if err := product.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.productRepo.Update(ctx, product)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("Update: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: product id=%d updated", id)
	return models.FromDomainAdminProduct(updated), nil
}

// Delete удаляет товар (администратор)
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return ErrProductNotFound
		}
		s.logger.Error("Delete: repository error for product id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: product id=%d deleted", id)
	return nil
}

// ListLessonTypes активные типы уроков
func (s *Service) ListLessonTypes(ctx context.Context) (*models.LessonTypeListResponse, error) {
	types, err := s.lessonTypeRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListLessonTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLessonTypes - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLessonTypeList(types), nil
}
