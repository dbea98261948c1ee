package cart

import (
	"time"

	"storefront-client/internal/product"
)

// Line is one entry of the running cart. ID is assigned on creation and
// stays stable across quantity changes.
type Line struct {
	ID       string          `json:"id"`
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (l Line) Total() float64 {
	return l.Product.FinalPrice * float64(l.Quantity)
}

// Selection is the quick-buy ("buy now") choice, kept apart from the cart.
type Selection struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Line presents the selection as a single cart line so both checkout paths
// price items the same way.
func (s Selection) Line() Line {
	return Line{ID: quickBuyLineID, Product: s.Product, Quantity: s.Quantity}
}

type DiscountCode struct {
	Code      string    `json:"code"`
	AppliedAt time.Time `json:"applied_at"`
}

// Source names which of the two carts a checkout purchases from.
type Source string

const (
	SourceCart     Source = "cart"
	SourceQuickBuy Source = "buy_now"
)

const quickBuyLineID = "buy_now"

// CountItems sums quantities.
func CountItems(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// SumLines is Σ finalPrice × quantity.
func SumLines(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.Total()
	}
	return total
}

// ClampQuantity bounds qty to [1, stock]. An unknown stock (below 1) leaves
// the upper bound open; the backend decides availability.
func ClampQuantity(qty, stock int) int {
	if qty < 1 {
		qty = 1
	}
	if stock >= 1 && qty > stock {
		qty = stock
	}
	return qty
}
