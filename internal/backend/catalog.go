package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

// ListProducts fetches the full catalog from GET /api/product.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/product", nil, &products, "Failed to load products"); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product, including its color options, from
// GET /api/product/{id}.
func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/api/product/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &product, "Failed to load product"); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}
