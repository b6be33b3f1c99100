package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/cart"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to check out")

// OrderAPI is the slice of the backend the checkout flow writes to.
// Satisfied by *backend.Client.
type OrderAPI interface {
	CreateShippingInfo(ctx context.Context, info domain.ShippingInfo) (int64, error)
	CreateOrder(ctx context.Context, order domain.Order) (int64, error)
}

// Service turns the current cart into an order: shipping info first, then
// the order itself carrying a client-generated confirmation number. The cart
// is cleared only after the backend accepts the order, so a failed submission
// leaves the visitor's items intact for a retry.
type Service struct {
	api  OrderAPI
	cart *cart.Store
	log  *slog.Logger
}

func NewService(api OrderAPI, cartStore *cart.Store, log *slog.Logger) *Service {
	return &Service{api: api, cart: cartStore, log: log}
}

// PlaceOrder submits the cart with the given delivery address.
func (s *Service) PlaceOrder(ctx context.Context, shipping domain.ShippingInfo) (domain.OrderConfirmation, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return domain.OrderConfirmation{}, ErrEmptyCart
	}

	shippingID, err := s.api.CreateShippingInfo(ctx, shipping)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("create shipping info: %w", err)
	}

	details := make([]domain.OrderDetail, 0, len(items))
	var total int64
	for _, item := range items {
		details = append(details, domain.OrderDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			ColorID:   item.ColorID,
		})
		total += item.SubtotalCents()
	}

	confirmationNum := uuid.New().String()
	orderID, err := s.api.CreateOrder(ctx, domain.Order{
		ShippingInfoID:  shippingID,
		ConfirmationNum: confirmationNum,
		Details:         details,
	})
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("create order: %w", err)
	}

	s.cart.Clear()
	s.log.Info("order placed", "order_id", orderID, "confirmation", confirmationNum, "total_cents", total)

	return domain.OrderConfirmation{
		OrderID:         orderID,
		ConfirmationNum: confirmationNum,
		TotalCents:      total,
	}, nil
}
