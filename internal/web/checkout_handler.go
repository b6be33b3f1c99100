package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/checkout"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

type checkoutDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

func (req checkoutDTO) validate() string {
	required := map[string]string{
		"email":      req.Email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"address":    req.Address,
		"city":       req.City,
		"state":      req.State,
		"zip":        req.Zip,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return field + " is required"
		}
	}
	if !emailRe.MatchString(req.Email) {
		return "a valid email is required"
	}
	return ""
}

// POST /api/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	var req checkoutDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, "invalid_shipping_info", msg)
		return
	}

	conf, err := v.Checkout.PlaceOrder(r.Context(), domain.ShippingInfo{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
	})
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
			return
		}
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, conf)
}
