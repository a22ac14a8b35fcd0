package reservations

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/api/middleware"
	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/reservations"
	"github.com/m04kA/EquestrianHub/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgInvalidRequestBody   = "invalid request body"
	msgMissingUserID        = "missing user"
	msgNotFound             = "reservation not found"
	msgForbidden            = "access denied"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/reservations/{reservationId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const route = "GET /reservations/{id}"

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id, actor)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Reservation retrieved: reservation_id=%d, user_id=%d", route, id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListMine GET /api/v1/users/me/reservations
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	const route = "GET /users/me/reservations"

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("%s - Failed to list reservations: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Reservations retrieved: user_id=%d, count=%d", route, userID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CancelOwn PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) CancelOwn(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /reservations/{id}/cancel"

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathID(r, "reservationId")
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.Cancel(r.Context(), id, actor)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Reservation cancelled: reservation_id=%d, user_id=%d", route, id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// List GET /api/v1/admin/reservations
// Query params: from, to (YYYY-MM-DD), status (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/reservations"

	result, err := h.service.ListAll(r.Context(), ToListRequest(r.URL.Query()))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("%s - Invalid filter: %v", route, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("%s - Failed to list reservations: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Reservations retrieved: count=%d", route, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Confirm PATCH /api/v1/admin/reservations/{id}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, "PATCH /admin/reservations/{id}/confirm", h.service.Confirm)
}

// Complete PATCH /api/v1/admin/reservations/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, "PATCH /admin/reservations/{id}/complete", h.service.Complete)
}

// Cancel PATCH /api/v1/admin/reservations/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())
	h.adminTransition(w, r, "PATCH /admin/reservations/{id}/cancel", func(ctx context.Context, id int64) (*models.ReservationResponse, error) {
		return h.service.Cancel(ctx, id, actor)
	})
}

// Notes PATCH /api/v1/admin/reservations/{id}/notes
func (h *Handler) Notes(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/reservations/{id}/notes"

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
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

	h.logger.Info("%s - Notes updated: reservation_id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/reservations/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/reservations/{id}"

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Reservation deleted: reservation_id=%d", route, id)
	handlers.RespondNoContent(w)
}

type transitionFunc func(ctx context.Context, id int64) (*models.ReservationResponse, error)

func (h *Handler) adminTransition(w http.ResponseWriter, r *http.Request, route string, fn transitionFunc) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := fn(r.Context(), id)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Reservation updated: reservation_id=%d, status=%s", route, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// respondError общий маппинг ошибок сервиса записей
func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, reservations.ErrReservationNotFound):
		h.logger.Warn("%s - Reservation not found: reservation_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, reservations.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: reservation_id=%d", route, id)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, domain.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: reservation_id=%d, error=%v", route, id, err)
		handlers.RespondConflict(w, err.Error())

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: reservation_id=%d, error=%v", route, id, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: reservation_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
