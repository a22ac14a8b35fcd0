package reservations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquestrianHub/internal/api/middleware"
	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/reservations"
	"github.com/m04kA/EquestrianHub/internal/service/reservations/models"
	"github.com/m04kA/EquestrianHub/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, actor)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func (m *mockService) ListUser(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	args := m.Called(ctx, userID)
	resp, _ := args.Get(0).(*models.ReservationListResponse)
	return resp, args.Error(1)
}

func (m *mockService) ListAll(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ReservationListResponse)
	return resp, args.Error(1)
}

func (m *mockService) Confirm(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func (m *mockService) Complete(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func (m *mockService) Cancel(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, actor)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func (m *mockService) Annotate(ctx context.Context, id int64, notes string) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, notes)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var (
	customer = domain.Actor{UserID: 7, Role: domain.RoleCustomer}
	admin    = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

func newRequest(method, target string, body string, actor domain.Actor, vars map[string]string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r = r.WithContext(middleware.WithActor(r.Context(), actor))
	return mux.SetURLVars(r, vars)
}

func newHandler(svc *mockService) *Handler {
	return NewHandler(svc, logger.NewWriter(io.Discard, logger.LevelDebug))
}

func TestGet_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"found", nil, http.StatusOK},
		{"not found", reservations.ErrReservationNotFound, http.StatusNotFound},
		{"foreign", reservations.ErrAccessDenied, http.StatusForbidden},
		{"internal", reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err == nil {
				svc.On("GetByID", mock.Anything, int64(31), customer).Return(&models.ReservationResponse{ID: 31, Status: "pending"}, nil)
			} else {
				svc.On("GetByID", mock.Anything, int64(31), customer).Return(nil, tt.err)
			}

			w := httptest.NewRecorder()
			newHandler(svc).Get(w, newRequest(http.MethodGet, "/api/v1/reservations/31", "", customer,
				map[string]string{"reservationId": "31"}))

			assert.Equal(t, tt.status, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestGet_InvalidID(t *testing.T) {
	w := httptest.NewRecorder()
	newHandler(&mockService{}).Get(w, newRequest(http.MethodGet, "/api/v1/reservations/abc", "", customer,
		map[string]string{"reservationId": "abc"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelOwn_CompletedIsConflict(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, int64(31), customer).
		Return(nil, fmt.Errorf("%w: completed -> cancelled", reservations.ErrInvalidTransition))

	w := httptest.NewRecorder()
	newHandler(svc).CancelOwn(w, newRequest(http.MethodPatch, "/api/v1/reservations/31/cancel", "", customer,
		map[string]string{"reservationId": "31"}))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestList_ParsesQuery(t *testing.T) {
	svc := &mockService{}
	svc.On("ListAll", mock.Anything, mock.MatchedBy(func(req *models.ListReservationsRequest) bool {
		return req.From != nil && *req.From == "2025-10-01" &&
			req.To != nil && *req.To == "2025-10-31" &&
			assert.ObjectsAreEqual([]string{"pending,confirmed"}, req.Statuses)
	})).Return(&models.ReservationListResponse{Reservations: []models.ReservationResponse{{ID: 1}, {ID: 2}}}, nil)

	w := httptest.NewRecorder()
	newHandler(svc).List(w, newRequest(http.MethodGet,
		"/api/v1/admin/reservations?from=2025-10-01&to=2025-10-31&status=pending,confirmed", "", admin, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reservations"`)
}

func TestList_InvalidStatus(t *testing.T) {
	svc := &mockService{}
	svc.On("ListAll", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown reservation status \"paid\"", reservations.ErrInvalidInput))

	w := httptest.NewRecorder()
	newHandler(svc).List(w, newRequest(http.MethodGet, "/api/v1/admin/reservations?status=paid", "", admin, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminTransitions(t *testing.T) {
	svc := &mockService{}
	svc.On("Confirm", mock.Anything, int64(5)).Return(&models.ReservationResponse{ID: 5, Status: "confirmed"}, nil)
	svc.On("Complete", mock.Anything, int64(5)).Return(&models.ReservationResponse{ID: 5, Status: "completed"}, nil)
	svc.On("Cancel", mock.Anything, int64(5), admin).Return(&models.ReservationResponse{ID: 5, Status: "cancelled"}, nil)
	h := newHandler(svc)
	vars := map[string]string{"id": "5"}

	for name, fn := range map[string]http.HandlerFunc{"confirmed": h.Confirm, "completed": h.Complete, "cancelled": h.Cancel} {
		w := httptest.NewRecorder()
		fn(w, newRequest(http.MethodPatch, "/api/v1/admin/reservations/5/x", "", admin, vars))

		require.Equal(t, http.StatusOK, w.Code, name)
		assert.Contains(t, w.Body.String(), `"status":"`+name+`"`)
	}
	svc.AssertExpectations(t)
}

func TestNotesAndDelete(t *testing.T) {
	svc := &mockService{}
	svc.On("Annotate", mock.Anything, int64(5), "bring helmet").Return(&models.ReservationResponse{ID: 5}, nil)
	svc.On("Delete", mock.Anything, int64(5)).Return(nil)
	svc.On("Delete", mock.Anything, int64(6)).Return(reservations.ErrReservationNotFound)
	h := newHandler(svc)

	w := httptest.NewRecorder()
	h.Notes(w, newRequest(http.MethodPatch, "/api/v1/admin/reservations/5/notes", `{"notes":"bring helmet"}`, admin,
		map[string]string{"id": "5"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Delete(w, newRequest(http.MethodDelete, "/api/v1/admin/reservations/5", "", admin, map[string]string{"id": "5"}))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.Delete(w, newRequest(http.MethodDelete, "/api/v1/admin/reservations/6", "", admin, map[string]string{"id": "6"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
