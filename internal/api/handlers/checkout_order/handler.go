package checkout_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/api/middleware"
	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/orders/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidProof       = "payment proof must be base64 encoded"
	msgMissingUserID      = "missing user"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /orders - Invalid payment proof: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidProof)
		return
	}

	order, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /orders - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created successfully: order_id=%d, user_id=%d, status=%s",
		order.ID, userID, order.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainDetails(order))
}
