package reports

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/service/admin"
)

const (
	msgInvalidUserID = "invalid user id"
	msgUserNotFound  = "user not found"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Analytics GET /api/v1/admin/analytics
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Analytics(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/analytics - Failed to build analytics: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/analytics - Analytics built: orders=%d, bookings=%d", result.TotalOrders, result.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Customers GET /api/v1/admin/customers
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Customers(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/customers - Failed to list customers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/customers - Customers retrieved: count=%d", len(result.Customers))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CustomerSummary GET /api/v1/admin/customers/{userId}/summary
func (h *Handler) CustomerSummary(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/customers/{id}/summary"

	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		h.logger.Warn("%s - Invalid user ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.CustomerSummary(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrUserNotFound):
			h.logger.Warn("%s - User not found: user_id=%d", route, userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("%s - Failed to build summary: user_id=%d, error=%v", route, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
