package proofs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	proofStorage "github.com/m04kA/EquestrianHub/internal/infra/storage/proofs"
)

const (
	msgInvalidKey = "invalid proof key"
	msgNotFound   = "proof not found"
)

type Handler struct {
	store  ProofStore
	logger Logger
}

func NewHandler(store ProofStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle GET /api/v1/admin/proofs/{key}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	data, contentType, err := h.store.Open(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, proofStorage.ErrInvalidKey):
			h.logger.Warn("GET /admin/proofs/{key} - Invalid key: %q", key)
			handlers.RespondBadRequest(w, msgInvalidKey)

		case errors.Is(err, proofStorage.ErrProofNotFound):
			h.logger.Warn("GET /admin/proofs/{key} - Proof not found: key=%s", key)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/proofs/{key} - Failed to read proof: key=%s, error=%v", key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
