package catalog

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/service/catalog/models"
)

type CatalogService interface {
	ListProducts(ctx context.Context, category string) (*models.ProductListResponse, error)
	GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error)
	ListLessonTypes(ctx context.Context) (*models.LessonTypeListResponse, error)
	ListAll(ctx context.Context) (*models.AdminProductListResponse, error)
	Create(ctx context.Context, req *models.ProductRequest) (*models.AdminProductResponse, error)
	Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.AdminProductResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
