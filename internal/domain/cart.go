package domain

// LineItem is one row in the cart: a product plus the chosen color and the
// accumulated quantity. Name, image, color name and unit price are snapshots
// taken when the row was created; they are not re-synced if the catalog
// changes afterwards.
type LineItem struct {
	ProductID      int64  `json:"product_id"`
	ColorID        int64  `json:"color_id"` // 0 when the product has no color options
	ColorName      string `json:"color_name,omitempty"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url,omitempty"`
	UnitPriceCents int64  `json:"unit_price"`
	Quantity       int    `json:"quantity"`
	OwnerUserID    int64  `json:"owner_user_id,omitempty"` // 0 for anonymous carts
}

// SubtotalCents returns quantity times unit price for this row.
func (li LineItem) SubtotalCents() int64 {
	return int64(li.Quantity) * li.UnitPriceCents
}
