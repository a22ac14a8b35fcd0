package catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquestrianHub/internal/api/handlers"
	"github.com/m04kA/EquestrianHub/internal/domain"
	"github.com/m04kA/EquestrianHub/internal/service/catalog"
	"github.com/m04kA/EquestrianHub/internal/service/catalog/models"
)

const (
	msgInvalidProductID   = "invalid product id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "product not found"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListProducts GET /api/v1/products
// Query params: category (опционально)
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	result, err := h.service.ListProducts(r.Context(), category)
	if err != nil {
		h.logger.Error("GET /products - Failed to list products: category=%q, error=%v", category, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /products - Products retrieved: category=%q, count=%d", category, len(result.Products))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetProduct GET /api/v1/products/{productId}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const route = "GET /products/{id}"

	id, err := handlers.PathID(r, "productId")
	if err != nil {
		h.logger.Warn("%s - Invalid product ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	result, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListLessonTypes GET /api/v1/lesson-types
func (h *Handler) ListLessonTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLessonTypes(r.Context())
	if err != nil {
		h.logger.Error("GET /lesson-types - Failed to list lesson types: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// AdminList GET /api/v1/admin/products
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/products - Failed to list products: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/products - Products retrieved: count=%d", len(result.Products))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/products
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/products"

	var req models.ProductRequest
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

	h.logger.Info("%s - Product created: product_id=%d, name=%q", route, result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/admin/products/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/products/{id}"

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid product ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req models.ProductRequest
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

	h.logger.Info("%s - Product updated: product_id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/admin/products/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/products/{id}"

	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid product ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - Product deleted: product_id=%d", route, id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		h.logger.Warn("%s - Product not found: product_id=%d", route, id)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: product_id=%d, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
