package time_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/timeslots"
	"github.com/m04kA/EquestrianHub/internal/service/timeslots/models"
)

const (
	msgInvalidTemplateID  = "invalid time slot id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "time slot not found"
	msgAlreadyExists      = "time slot already exists"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/time-slots
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/time-slots - Failed to list time slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/time-slots - Time slots retrieved: count=%d", len(result.TimeSlots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/time-slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/time-slots"

	var req models.CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, 0, err)
		return
	}

	h.logger.Info("%s - Time slot created: id=%d, day=%s, %s-%s",
		route, result.ID, result.DayName, result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/time-slots/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/time-slots/{id}"

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid time slot ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	var req models.UpdateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Time slot updated: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/time-slots/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/time-slots/{id}"

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid time slot ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Time slot deleted: id=%d", route, id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, timeslots.ErrTemplateNotFound):
		h.logger.Warn("%s - Time slot not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, timeslots.ErrTemplateExists):
		h.logger.Warn("%s - Duplicate time slot: id=%d", route, id)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
