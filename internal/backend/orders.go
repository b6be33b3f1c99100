package backend

import (
	"context"
	"net/http"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

// CreateShippingInfo stores a delivery address via POST /shipping_info and
// returns the id the order must reference.
func (c *Client) CreateShippingInfo(ctx context.Context, info domain.ShippingInfo) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/shipping_info", info, &resp, "Failed to create shipping information."); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// CreateOrder submits the order via POST /orders. The confirmation number in
// the payload is generated client-side before submission.
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", order, &resp, "Failed to create order."); err != nil {
		return 0, err
	}
	return resp.ID, nil
}
