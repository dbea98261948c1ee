package wishlist

import (
	"time"

	"storefront-client/internal/product"
)

type Item struct {
	ID      string          `json:"id"`
	Product product.Product `json:"product"`
	AddedAt *time.Time      `json:"added_at,omitempty"`
}

type addRequest struct {
	ProductID string `json:"product_id"`
}
