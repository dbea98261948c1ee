package address

import (
	"strings"
)

// PickupSentinel is sent as the shipping address when the buyer collects the
// order in store.
const PickupSentinel = "Store Pickup"

type Address struct {
	Street     string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

func (a Address) Normalize() Address {
	return Address{
		Street:     collapse(a.Street),
		City:       collapse(a.City),
		PostalCode: strings.ToUpper(collapse(a.PostalCode)),
	}
}

func (a Address) IsZero() bool {
	n := a.Normalize()
	return n.Street == "" && n.City == "" && n.PostalCode == ""
}

// Complete reports whether every part needed for delivery is present.
func (a Address) Complete() bool {
	n := a.Normalize()
	return n.Street != "" && n.City != "" && n.PostalCode != ""
}

// String renders the single-line form the orders endpoint accepts:
// "street, city, postal code". Empty parts are skipped.
func (a Address) String() string {
	n := a.Normalize()
	parts := make([]string, 0, 3)
	for _, p := range []string{n.Street, n.City, n.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ShippingLine is the value for the order's shipping_address field.
func ShippingLine(a Address, pickup bool) string {
	if pickup {
		return PickupSentinel
	}
	return a.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
