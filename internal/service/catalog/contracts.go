package catalog

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/domain"
	productRepo "github.com/m04kA/EquestrianHub/internal/infra/storage/product"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter productRepo.Filter) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// LessonTypeRepository интерфейс репозитория типов уроков
type LessonTypeRepository interface {
	ListActive(ctx context.Context) ([]*domain.LessonType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
