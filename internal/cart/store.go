package cart

import (
	"sync"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

// Store holds the line items a visitor intends to purchase. It lives entirely
// in memory; a fresh application load starts with an empty cart. Rows are
// keyed by (product, color): adding the same combination again accumulates
// quantity instead of duplicating the row.
//
// Operations never fail. Callers that need a non-empty cart (checkout) check
// that themselves before submitting.
type Store struct {
	mu    sync.RWMutex
	items []domain.LineItem
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem appends a line item for the product and color, snapshotting the
// product's current name, image, price and the color label. If a row with the
// same (product, color) already exists its quantity is incremented by qty.
// Quantities below 1 are clamped to 1. ownerUserID is the authenticated user
// at add time, 0 for anonymous visitors.
func (s *Store) AddItem(p domain.Product, color *domain.Color, qty int, ownerUserID int64) {
	if qty < 1 {
		qty = 1
	}

	var colorID int64
	var colorName string
	if color != nil {
		colorID = color.ID
		colorName = color.Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ID && s.items[i].ColorID == colorID {
			s.items[i].Quantity += qty
			return
		}
	}

	s.items = append(s.items, domain.LineItem{
		ProductID:      p.ID,
		ColorID:        colorID,
		ColorName:      colorName,
		Name:           p.Name,
		ImageURL:       p.ImageURL,
		UnitPriceCents: p.PriceCents,
		Quantity:       qty,
		OwnerUserID:    ownerUserID,
	})
}

// UpdateQuantity replaces the quantity of the matching row. A quantity of
// zero or less removes the row, keeping every stored row at quantity >= 1.
// No-op when no row matches.
func (s *Store) UpdateQuantity(productID, colorID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID, colorID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].ColorID == colorID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the matching row. No-op when no row matches.
func (s *Store) RemoveItem(productID, colorID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ProductID == productID && item.ColorID == colorID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Used after successful order placement.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the current rows in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct rows.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// TotalItemCount is the sum of all row quantities.
func (s *Store) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPriceCents is the sum over rows of quantity times unit price, in
// integer cents.
func (s *Store) TotalPriceCents() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, item := range s.items {
		total += item.SubtotalCents()
	}
	return total
}
