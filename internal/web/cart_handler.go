package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/cart"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/catalog"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

// CartHandler exposes the visitor's cart store. Adds go through the catalog
// so line items snapshot the product's current name, price and image.
type CartHandler struct {
	catalog *catalog.Service
}

func NewCartHandler(catalogService *catalog.Service) *CartHandler {
	return &CartHandler{catalog: catalogService}
}

type addItemDTO struct {
	ProductID int64 `json:"product_id"`
	ColorID   int64 `json:"color_id"`
	Quantity  int   `json:"quantity"`
}

type updateQuantityDTO struct {
	Quantity int   `json:"quantity"`
	ColorID  int64 `json:"color_id"`
}

type cartDTO struct {
	Items           []domain.LineItem `json:"items"`
	TotalItemCount  int               `json:"total_item_count"`
	TotalPriceCents int64             `json:"total_price"`
}

func cartResponse(s *cart.Store) cartDTO {
	return cartDTO{
		Items:           s.Items(),
		TotalItemCount:  s.TotalItemCount(),
		TotalPriceCents: s.TotalPriceCents(),
	}
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())
	respondJSON(w, http.StatusOK, cartResponse(v.Cart))
}

// POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	var req addItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	var color *domain.Color
	if req.ColorID != 0 {
		for i := range product.Colors {
			if product.Colors[i].ID == req.ColorID {
				color = &product.Colors[i]
				break
			}
		}
		if color == nil {
			respondError(w, http.StatusBadRequest, "invalid_color_id", "product has no such color")
			return
		}
	}

	var ownerID int64
	if user, ok := v.Session.CurrentUser(); ok {
		ownerID = user.ID
	}

	v.Cart.AddItem(product, color, req.Quantity, ownerID)
	respondJSON(w, http.StatusCreated, cartResponse(v.Cart))
}

// PATCH /api/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req updateQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	// Zero and negative quantities remove the row.
	v.Cart.UpdateQuantity(productID, req.ColorID, req.Quantity)
	respondJSON(w, http.StatusOK, cartResponse(v.Cart))
}

// DELETE /api/cart/items/{product_id}?color_id=
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	colorID, _ := strconv.ParseInt(r.URL.Query().Get("color_id"), 10, 64)

	v.Cart.RemoveItem(productID, colorID)
	respondJSON(w, http.StatusOK, cartResponse(v.Cart))
}

// DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	v.Cart.Clear()
	respondJSON(w, http.StatusOK, cartResponse(v.Cart))
}
