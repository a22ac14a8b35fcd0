package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/api/middleware"
	"github.com/m04kA/EquestrianHub/internal/domain"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidProof       = "payment proof must be base64 encoded"
	msgMissingUserID      = "missing user"
	msgSlotNotAvailable   = "the selected time slot is not available"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid payment proof: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidProof)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotUnavailable):
			h.logger.Warn("POST /reservations - Slot not available: user_id=%d, date=%s, time=%s-%s",
				userID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /reservations - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, verification=%q",
		result.Details.ID, userID, result.Details.Verification.Label())
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
