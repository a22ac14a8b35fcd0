package contact

import (
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSendFailed         = "failed to send message, please try again later"
)

type Handler struct {
	mailer ContactMailer
	logger Logger
}

func NewHandler(mailer ContactMailer, logger Logger) *Handler {
	return &Handler{
		mailer: mailer,
		logger: logger,
	}
}

// Handle POST /api/v1/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("POST /contact - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	if err := h.mailer.ContactMessage(r.Context(), req.ToContactForm()); err != nil {
		h.logger.Error("POST /contact - Failed to send message: %v", err)
		handlers.RespondError(w, http.StatusBadGateway, msgSendFailed)
		return
	}

	h.logger.Info("POST /contact - Message sent")
	handlers.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
