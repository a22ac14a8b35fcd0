package orders

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/api/middleware"
	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/orders"
	"github.com/m04kA/EquestrianHub/internal/service/orders/models"
)

const (
	msgInvalidOrderID     = "invalid order id"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user"
	msgNotFound           = "order not found"
	msgForbidden          = "access denied"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/orders/{orderId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /orders/{id}"

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "orderId")
	if err != nil {
		h.logger.Warn("%s - Invalid order ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id, actor)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Order retrieved: order_id=%d, user_id=%d", route, id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListMine GET /api/v1/users/me/orders
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	const route = "GET /users/me/orders"

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("%s - Failed to list orders: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Orders retrieved: user_id=%d, count=%d", route, userID, len(result.Orders))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// List GET /api/v1/admin/orders
// Query params: status (опционально, можно несколько)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/orders"

	result, err := h.service.ListAll(r.Context(), &models.ListOrdersRequest{Statuses: r.URL.Query()["status"]})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("%s - Invalid filter: %v", route, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("%s - Failed to list orders: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Orders retrieved: count=%d", route, len(result.Orders))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Complete PATCH /api/v1/admin/orders/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "PATCH /admin/orders/{id}/complete", h.service.Complete)
}

// Cancel PATCH /api/v1/admin/orders/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "PATCH /admin/orders/{id}/cancel", h.service.Cancel)
}

// Notes PATCH /api/v1/admin/orders/{id}/notes
func (h *Handler) Notes(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/orders/{id}/notes"

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid order ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req NotesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Annotate(r.Context(), id, req.Notes)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Notes updated: order_id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/orders/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/orders/{id}"

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid order ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Order deleted: order_id=%d", route, id)
	handlers.RespondNoContent(w)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, route string,
	fn func(ctx context.Context, id int64) (*models.OrderResponse, error)) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid order ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	result, err := fn(r.Context(), id)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Order updated: order_id=%d, status=%s", route, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		h.logger.Warn("%s - Order not found: order_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, orders.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: order_id=%d", route, id)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: order_id=%d, error=%v", route, id, err)
		handlers.RespondConflict(w, err.Error())

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: order_id=%d, error=%v", route, id, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: order_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
