package domain

// ShippingInfo is the delivery address collected by the checkout form.
type ShippingInfo struct {
	ID        int64  `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// OrderDetail is one purchased row as the backend expects it.
type OrderDetail struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	ColorID   int64 `json:"color_id,omitempty"`
}

// Order is the payload posted to the backend. The confirmation number is
// generated client-side before submission.
type Order struct {
	ShippingInfoID  int64         `json:"shipping_info_id"`
	ConfirmationNum string        `json:"confirmation_num"`
	Details         []OrderDetail `json:"order_details"`
}

// OrderConfirmation is what the checkout flow hands back to the caller once
// the backend accepts the order.
type OrderConfirmation struct {
	OrderID         int64  `json:"id"`
	ConfirmationNum string `json:"confirmation_num"`
	TotalCents      int64  `json:"total"`
}
