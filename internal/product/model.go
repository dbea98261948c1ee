package product

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Media struct {
	URL  string `json:"url" validate:"required"`
	Type string `json:"type"`
}

type Product struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Description  *string  `json:"description,omitempty"`
	Price        float64  `json:"price"`
	Discount     *float64 `json:"discount,omitempty"`
	FinalPrice   float64  `json:"final_price"`
	Stock        int      `json:"stock"`
	Category     string   `json:"category"`
	CategoryName string   `json:"category_name,omitempty"`
	Status       string   `json:"status,omitempty"`
	SellerName   string   `json:"seller_name,omitempty"`
	Media        []Media  `json:"media,omitempty"`
}

// InStock reports whether at least one unit can be ordered.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ListOptions narrows GET /products/. Empty fields are not sent.
type ListOptions struct {
	Category string
	Search   string
	Status   string
}
