package order

import (
	"bytes"
	"encoding/json"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ID accepts numeric or string ids from the backend.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Item is one order line as submitted.
type Item struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
}

// Submission is the POST /orders/ payload. Totals are computed locally and
// the backend is free to recompute them.
type Submission struct {
	BuyerID         string  `json:"buyer_id,omitempty"`
	Items           []Item  `json:"items"`
	ShippingAddress string  `json:"shipping_address"`
	DeliveryMethod  string  `json:"delivery_method"`
	Subtotal        float64 `json:"subtotal"`
	ShippingCost    float64 `json:"shipping_cost"`
	Total           float64 `json:"total"`
	PaymentMethod   string  `json:"payment_method"`
	Phone           string  `json:"phone"`
	Notes           string  `json:"notes,omitempty"`
	DiscountCode    string  `json:"discount_code,omitempty"`
}

type OrderItem struct {
	ProductID ID      `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is the backend's canonical record. Its totals replace whatever the
// client computed.
type Order struct {
	ID              ID          `json:"id" validate:"required"`
	Status          Status      `json:"status" validate:"required"`
	Subtotal        float64     `json:"subtotal"`
	ShippingCost    float64     `json:"shipping_cost"`
	Total           float64     `json:"total"`
	DeliveryMethod  string      `json:"delivery_method"`
	PaymentMethod   string      `json:"payment_method"`
	ShippingAddress string      `json:"shipping_address"`
	Phone           string      `json:"phone,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty"`
}
