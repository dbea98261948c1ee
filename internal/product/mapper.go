package product

import (
	"net/url"
	"strings"

	"storefront-client/internal/utils"
)

// normalize fills FinalPrice when the backend omitted it.
func normalize(p *Product) {
	if p == nil {
		return
	}
	if p.FinalPrice == 0 && p.Price > 0 {
		p.FinalPrice = DiscountedPrice(p.Price, p.Discount)
	}
	if p.Media == nil {
		p.Media = []Media{}
	}
}

// DiscountedPrice applies a percentage discount. Out of range discounts are
// ignored.
func DiscountedPrice(price float64, discount *float64) float64 {
	if discount == nil || *discount <= 0 || *discount >= 100 {
		return price
	}
	return utils.RoundPrice(price * (100 - *discount) / 100)
}

func (o ListOptions) query() string {
	q := url.Values{}
	if v := strings.TrimSpace(o.Category); v != "" {
		q.Set("category", v)
	}
	if v := utils.CollapseSpaces(o.Search); v != "" {
		q.Set("search", v)
	}
	if v := strings.TrimSpace(o.Status); v != "" {
		q.Set("status", v)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
