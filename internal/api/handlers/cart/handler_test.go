package cart

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/EquestrianHub/internal/api/middleware"
	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/cart"
	"github.com/m04kA/EquestrianHub/internal/service/cart/models"
	"github.com/m04kA/EquestrianHub/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Get(ctx context.Context, userID int64) (*models.CartResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*models.CartResponse)
	return resp, args.Error(1)
}

func (m *mockService) Add(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, req)
	resp, _ := args.Get(0).(*models.CartResponse)
	return resp, args.Error(1)
}

func (m *mockService) SetQuantity(ctx context.Context, userID, productID int64, qty int) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, productID, qty)
	resp, _ := args.Get(0).(*models.CartResponse)
	return resp, args.Error(1)
}

func (m *mockService) Remove(ctx context.Context, userID, productID int64) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, productID)
	resp, _ := args.Get(0).(*models.CartResponse)
	return resp, args.Error(1)
}

func (m *mockService) Clear(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func authed(r *http.Request, vars map[string]string) *http.Request {
	r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 7}))
	return mux.SetURLVars(r, vars)
}

func TestCartEndpoints(t *testing.T) {
	cartResp := &models.CartResponse{ItemCount: 3, Total: decimal.NewFromInt(130)}

	svc := &mockService{}
	svc.On("Get", mock.Anything, int64(7)).Return(cartResp, nil)
	svc.On("Add", mock.Anything, int64(7), &models.AddItemRequest{ProductID: 1, Quantity: 2}).Return(cartResp, nil)
	svc.On("Add", mock.Anything, int64(7), &models.AddItemRequest{ProductID: 99, Quantity: 1}).Return(nil, cart.ErrProductNotFound)
	svc.On("SetQuantity", mock.Anything, int64(7), int64(1), 0).Return(nil, cart.ErrInvalidQuantity)
	svc.On("Remove", mock.Anything, int64(7), int64(1)).Return(cartResp, nil)
	svc.On("Clear", mock.Anything, int64(7)).Return(nil)

	h := NewHandler(svc, logger.NewWriter(io.Discard, logger.LevelDebug))
	product := map[string]string{"productId": "1"}

	tests := []struct {
		name   string
		fn     http.HandlerFunc
		req    *http.Request
		status int
	}{
		{"get", h.Get, authed(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), nil), http.StatusOK},
		{"add", h.AddItem, authed(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
			strings.NewReader(`{"productId":1,"quantity":2}`)), nil), http.StatusOK},
		{"add unknown", h.AddItem, authed(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
			strings.NewReader(`{"productId":99,"quantity":1}`)), nil), http.StatusNotFound},
		{"zero quantity", h.SetQuantity, authed(httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/1",
			strings.NewReader(`{"quantity":0}`)), product), http.StatusBadRequest},
		{"remove", h.RemoveItem, authed(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/1", nil), product), http.StatusOK},
		{"clear", h.Clear, authed(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), nil), http.StatusNoContent},
		{"anonymous", h.Get, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.fn(w, tt.req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
