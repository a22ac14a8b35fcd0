package cart

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/api/middleware"
	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/cart"
	"github.com/m04kA/EquestrianHub/internal/service/cart/models"
)

const (
	msgInvalidProductID   = "invalid product id"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user"
	msgProductNotFound    = "product not found"
)

type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/cart
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /cart - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /cart", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// AddItem POST /api/v1/cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	const route = "POST /cart/items"

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AddItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Add(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, route, userID, err)
		return
	}

	h.logger.Info("%s - Item added: user_id=%d, product_id=%d, quantity=%d", route, userID, req.ProductID, req.Quantity)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// SetQuantity PUT /api/v1/cart/items/{productId}
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /cart/items/{productId}"

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	productID, err := handlers.PathID(r, "productId")
	if err != nil {
		h.logger.Warn("%s - Invalid product ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req models.SetQuantityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.respondError(w, route, userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// RemoveItem DELETE /api/v1/cart/items/{productId}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /cart/items/{productId}"

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	productID, err := handlers.PathID(r, "productId")
	if err != nil {
		h.logger.Warn("%s - Invalid product ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	result, err := h.service.Remove(r.Context(), userID, productID)
	if err != nil {
		h.respondError(w, route, userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Clear DELETE /api/v1/cart
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /cart - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		h.respondError(w, "DELETE /cart", userID, err)
		return
	}

	h.logger.Info("DELETE /cart - Cart cleared: user_id=%d", userID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, userID int64, err error) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		h.logger.Warn("%s - Product not found: user_id=%d", route, userID)
		handlers.RespondNotFound(w, msgProductNotFound)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}
