package domain

// Color is a selectable product variant. Products without variants have an
// empty color list and their cart rows use color id 0.
type Color struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product mirrors the catalog representation served by the backend. Price is
// an integer in cents; conversion to dollars is a render-time concern and
// never happens in this layer.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	PriceCents  int64   `json:"price"`
	Colors      []Color `json:"colors,omitempty"`
}
