package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/catalog"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalogService}
}

// GET /api/product
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/product/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}
