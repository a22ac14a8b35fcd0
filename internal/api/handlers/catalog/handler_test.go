package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/service/catalog"
	"github.com/m04kA/EquestrianHub/internal/service/catalog/models"
	"github.com/m04kA/EquestrianHub/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListProducts(ctx context.Context, category string) (*models.ProductListResponse, error) {
	args := m.Called(ctx, category)
	resp, _ := args.Get(0).(*models.ProductListResponse)
	return resp, args.Error(1)
}

func (m *mockService) GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.ProductResponse)
	return resp, args.Error(1)
}

func (m *mockService) ListLessonTypes(ctx context.Context) (*models.LessonTypeListResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.LessonTypeListResponse)
	return resp, args.Error(1)
}

func (m *mockService) ListAll(ctx context.Context) (*models.AdminProductListResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.AdminProductListResponse)
	return resp, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req *models.ProductRequest) (*models.AdminProductResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AdminProductResponse)
	return resp, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.AdminProductResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.AdminProductResponse)
	return resp, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newHandler(svc *mockService) *Handler {
	return NewHandler(svc, logger.NewWriter(io.Discard, logger.LevelDebug))
}

func TestListProducts_ByCategory(t *testing.T) {
	svc := &mockService{}
	svc.On("ListProducts", mock.Anything, "Tack").Return(&models.ProductListResponse{
		Products: []models.ProductResponse{{ID: 1, Name: "Saddle pad", Category: "Tack", Price: decimal.NewFromInt(50), Active: true}},
	}, nil)

	w := httptest.NewRecorder()
	newHandler(svc).ListProducts(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Tack", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.True(t, resp.Products[0].Price.Equal(decimal.NewFromInt(50)))
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := &mockService{}
	svc.On("GetProduct", mock.Anything, int64(9)).Return(nil, catalog.ErrProductNotFound)

	w := httptest.NewRecorder()
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/products/9", nil), map[string]string{"productId": "9"})
	newHandler(svc).GetProduct(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate_DecodesDecimalPrices(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.ProductRequest) bool {
		return req.Name == "Hoof pick" && req.Price.Equal(decimal.RequireFromString("12.50")) &&
			req.CostPrice.Equal(decimal.NewFromInt(5))
	})).Return(&models.AdminProductResponse{ProductResponse: models.ProductResponse{ID: 2, Name: "Hoof pick"}}, nil)

	w := httptest.NewRecorder()
	newHandler(svc).Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/products",
		strings.NewReader(`{"name":"Hoof pick","category":"Grooming","price":"12.50","costPrice":5,"stock":10}`)))

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	svc := &mockService{}
	svc.On("Delete", mock.Anything, int64(2)).Return(nil)

	w := httptest.NewRecorder()
	r := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/2", nil), map[string]string{"id": "2"})
	newHandler(svc).Delete(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
