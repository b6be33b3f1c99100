package web

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/backend"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/catalog"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
	"github.com/RedBeret/AIChatPoweredEcommerce/internal/shell"
)

var testLog = slog.New(slog.DiscardHandler)

type catalogMock struct {
	products map[int64]domain.Product
	err      error
}

func (m catalogMock) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m catalogMock) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, &backend.APIError{Status: http.StatusNotFound, Message: "Product not found"}
	}
	return p, nil
}

func newTestCatalog(mock catalogMock) *catalog.Service {
	return catalog.NewService(mock, catalog.NopCache{}, testLog)
}

// newTestVisitor builds a visitor whose backend client points at backendURL.
// Handlers only touch the stores they need, so an unused backend can be a
// dead URL.
func newTestVisitor(backendURL string) *shell.Visitor {
	client := backend.NewClient(backendURL, 0)
	return shell.NewVisitor("test-visitor", client, testLog, true)
}

func withVisitor(request *http.Request, v *shell.Visitor) *http.Request {
	ctx := context.WithValue(request.Context(), visitorKey, v)
	return request.WithContext(ctx)
}

func withURLParam(request *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))
}

var phoneFixture = domain.Product{
	ID:         1,
	Name:       "AI Phone",
	ImageURL:   "/img/phone.png",
	PriceCents: 69900,
	Colors: []domain.Color{
		{ID: 10, Name: "Black"},
		{ID: 11, Name: "Silver"},
	},
}

func TestGetCart_Empty(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{}))
	visitor := newTestVisitor("http://backend.invalid")

	recorder := httptest.NewRecorder()
	request := withVisitor(httptest.NewRequest("GET", "/", nil), visitor)

	handler.GetCart(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response cartDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
	if response.TotalPriceCents != 0 {
		t.Errorf("Expected total 0, got %d", response.TotalPriceCents)
	}
}

func TestAddItem_SnapshotsProduct(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{
		products: map[int64]domain.Product{1: phoneFixture},
	}))
	visitor := newTestVisitor("http://backend.invalid")

	body, _ := json.Marshal(addItemDTO{ProductID: 1, ColorID: 10, Quantity: 2})
	recorder := httptest.NewRecorder()
	request := withVisitor(httptest.NewRequest("POST", "/items", bytes.NewReader(body)), visitor)

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response cartDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(response.Items))
	}
	item := response.Items[0]
	if item.Name != "AI Phone" || item.UnitPriceCents != 69900 || item.ColorName != "Black" {
		t.Errorf("Line item did not snapshot product fields: %+v", item)
	}
	if response.TotalPriceCents != 139800 {
		t.Errorf("Expected total 139800, got %d", response.TotalPriceCents)
	}
}

func TestAddItem_MergesSameVariant(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{
		products: map[int64]domain.Product{1: phoneFixture},
	}))
	visitor := newTestVisitor("http://backend.invalid")

	for _, qty := range []int{1, 2} {
		body, _ := json.Marshal(addItemDTO{ProductID: 1, ColorID: 10, Quantity: qty})
		recorder := httptest.NewRecorder()
		request := withVisitor(httptest.NewRequest("POST", "/items", bytes.NewReader(body)), visitor)
		handler.AddItem(recorder, request)
		if recorder.Code != http.StatusCreated {
			t.Fatalf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
		}
	}

	items := visitor.Cart.Items()
	if len(items) != 1 {
		t.Fatalf("Expected merged row, got %d rows", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("Expected quantity 3, got %d", items[0].Quantity)
	}
}

func TestAddItem_InvalidJSON(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{}))
	visitor := newTestVisitor("http://backend.invalid")

	recorder := httptest.NewRecorder()
	request := withVisitor(httptest.NewRequest("POST", "/items", bytes.NewReader([]byte("invalid json"))), visitor)

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_request" {
		t.Errorf("Expected error code 'invalid_request', got '%s'", response.Code)
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{
		products: map[int64]domain.Product{1: phoneFixture},
	}))
	visitor := newTestVisitor("http://backend.invalid")

	tests := []struct {
		name     string
		quantity int
	}{
		{"zero quantity", 0},
		{"negative quantity", -1},
		{"quantity too high", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(addItemDTO{ProductID: 1, Quantity: tt.quantity})
			recorder := httptest.NewRecorder()
			request := withVisitor(httptest.NewRequest("POST", "/items", bytes.NewReader(body)), visitor)

			handler.AddItem(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != "invalid_quantity" {
				t.Errorf("Expected error code 'invalid_quantity', got '%s'", response.Code)
			}
		})
	}
}

func TestAddItem_UnknownColor(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{
		products: map[int64]domain.Product{1: phoneFixture},
	}))
	visitor := newTestVisitor("http://backend.invalid")

	body, _ := json.Marshal(addItemDTO{ProductID: 1, ColorID: 999, Quantity: 1})
	recorder := httptest.NewRecorder()
	request := withVisitor(httptest.NewRequest("POST", "/items", bytes.NewReader(body)), visitor)

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_color_id" {
		t.Errorf("Expected error code 'invalid_color_id', got '%s'", response.Code)
	}
}

func TestAddItem_ProductNotFound(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{}))
	visitor := newTestVisitor("http://backend.invalid")

	body, _ := json.Marshal(addItemDTO{ProductID: 42, Quantity: 1})
	recorder := httptest.NewRecorder()
	request := withVisitor(httptest.NewRequest("POST", "/items", bytes.NewReader(body)), visitor)

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Error != "Product not found" {
		t.Errorf("Expected backend message passed through, got '%s'", response.Error)
	}
}

func TestUpdateQuantity_ZeroRemovesRow(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{}))
	visitor := newTestVisitor("http://backend.invalid")
	visitor.Cart.AddItem(phoneFixture, &phoneFixture.Colors[0], 2, 0)

	body, _ := json.Marshal(updateQuantityDTO{Quantity: 0, ColorID: 10})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PATCH", "/items/1", bytes.NewReader(body))
	request = withVisitor(request, visitor)
	request = withURLParam(request, "product_id", "1")

	handler.UpdateQuantity(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if visitor.Cart.Len() != 0 {
		t.Errorf("Expected row removed, cart has %d rows", visitor.Cart.Len())
	}
}

func TestUpdateQuantity_InvalidProductID(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{}))
	visitor := newTestVisitor("http://backend.invalid")

	tests := []struct {
		name      string
		productID string
	}{
		{"non-numeric product_id", "abc"},
		{"zero product_id", "0"},
		{"negative product_id", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(updateQuantityDTO{Quantity: 5})
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest("PATCH", "/items/"+tt.productID, bytes.NewReader(body))
			request = withVisitor(request, visitor)
			request = withURLParam(request, "product_id", tt.productID)

			handler.UpdateQuantity(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}
		})
	}
}

func TestRemoveItem_OnlyNamedVariant(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{}))
	visitor := newTestVisitor("http://backend.invalid")
	visitor.Cart.AddItem(phoneFixture, &phoneFixture.Colors[0], 1, 0)
	visitor.Cart.AddItem(phoneFixture, &phoneFixture.Colors[1], 1, 0)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/items/1?color_id=10", nil)
	request = withVisitor(request, visitor)
	request = withURLParam(request, "product_id", "1")

	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	items := visitor.Cart.Items()
	if len(items) != 1 {
		t.Fatalf("Expected 1 remaining row, got %d", len(items))
	}
	if items[0].ColorID != 11 {
		t.Errorf("Expected silver row to survive, got color id %d", items[0].ColorID)
	}
}

func TestClearCart(t *testing.T) {
	handler := NewCartHandler(newTestCatalog(catalogMock{}))
	visitor := newTestVisitor("http://backend.invalid")
	visitor.Cart.AddItem(phoneFixture, nil, 3, 0)

	recorder := httptest.NewRecorder()
	request := withVisitor(httptest.NewRequest("DELETE", "/", nil), visitor)

	handler.ClearCart(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response cartDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
}
